package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanDivisions(t *testing.T) {
	t.Run("specific phrase wins over bare keyword", func(t *testing.T) {
		got := ScanDivisions("MEN'S 212 BODYBUILDING – OPEN")
		assert.Equal(t, []string{Mens212Bodybuilding}, got)
	})

	t.Run("multiple divisions in one blob", func(t *testing.T) {
		got := ScanDivisions("Sample Pro: Men's Bodybuilding, Women's Bikini and Women's Figure")
		assert.ElementsMatch(t, []string{MensBodybuilding, WomensBikini, WomensFigure}, got)
	})

	t.Run("bare keyword fallback", func(t *testing.T) {
		got := ScanDivisions("bikini showdown")
		assert.Equal(t, []string{WomensBikini}, got)
	})

	t.Run("no division mentioned", func(t *testing.T) {
		assert.Empty(t, ScanDivisions("annual promoters meeting"))
	})

	t.Run("duplicate mentions collapse", func(t *testing.T) {
		got := ScanDivisions("women's bikini pro — bikini only")
		assert.Equal(t, []string{WomensBikini}, got)
	})

	t.Run("women's label does not register the men's division", func(t *testing.T) {
		got := ScanDivisions("Women's Physique")
		assert.Equal(t, []string{WomensPhysique}, got)
	})

	t.Run("women's bodybuilding alone stays women's", func(t *testing.T) {
		got := ScanDivisions("Women's Bodybuilding and Women's Physique")
		assert.Equal(t, []string{WomensBodybuilding, WomensPhysique}, got)
	})
}

func TestSplitDivisions(t *testing.T) {
	assert.Nil(t, SplitDivisions(""))
	assert.Equal(t,
		[]string{"Men's Bodybuilding", "Women's Bikini"},
		SplitDivisions(" Men's Bodybuilding ,, Women's Bikini ,"))
}

func TestWeightFromHint(t *testing.T) {
	assert.Equal(t, "212", WeightFromHint("Men's 212 Bodybuilding"))
	assert.Equal(t, "212", WeightFromHint("212"))
	assert.Equal(t, "Open", WeightFromHint("Men's Bodybuilding"))
	assert.Equal(t, "Open", WeightFromHint(""))
}
