package inventory

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganorabricks/figfinder/internal/domain"
)

const sampleXML = `<INVENTORY>
  <ITEM>
    <ITEMTYPE>P</ITEMTYPE>
    <ITEMID>3626</ITEMID>
    <COLOR>4</COLOR>
    <QTY>10</QTY>
    <PRICE>0.25</PRICE>
    <REMARKS>bin 12</REMARKS>
  </ITEM>
  <ITEM>
    <ITEMTYPE>P</ITEMTYPE>
    <ITEMID>3626</ITEMID>
    <COLOR>4</COLOR>
    <QTY>5</QTY>
    <PRICE>0.99</PRICE>
    <REMARKS>bin 30</REMARKS>
  </ITEM>
  <ITEM>
    <ITEMTYPE>M</ITEMTYPE>
    <ITEMID>sw0001</ITEMID>
    <COLOR>0</COLOR>
    <QTY>1</QTY>
  </ITEM>
  <ITEM>
    <ITEMTYPE>S</ITEMTYPE>
    <ITEMID>75159-1</ITEMID>
    <COLOR>0</COLOR>
    <QTY>1</QTY>
  </ITEM>
</INVENTORY>`

func TestParse(t *testing.T) {
	store, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	// Sets (type S) are excluded; the duplicate part lines merge into one slot
	assert.Equal(t, 2, store.UniqueParts())
	assert.Equal(t, 16, store.TotalPieces())
}

func TestParse_MergesDuplicateLines(t *testing.T) {
	store, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	entry, ok := store.Lookup(domain.PartRef{PartID: "3626", ColorID: 4})
	require.True(t, ok)

	assert.Equal(t, 15, entry.Quantity)
	// First-wins: the second line's price and remarks are ignored
	assert.True(t, entry.UnitPrice.Equal(decimal.RequireFromString("0.25")),
		"expected 0.25, got %s", entry.UnitPrice)
	assert.Equal(t, "bin 12", entry.Remarks)
}

func TestParse_MissingPriceDegradesToZero(t *testing.T) {
	store, err := Parse(strings.NewReader(sampleXML))
	require.NoError(t, err)

	entry, ok := store.Lookup(domain.PartRef{PartID: "sw0001", ColorID: 0})
	require.True(t, ok)
	assert.True(t, entry.UnitPrice.IsZero())
	assert.Empty(t, entry.Remarks)
}

func TestParse_FirstRemarksKeptEvenWhenEmptyPrice(t *testing.T) {
	const xml = `<INVENTORY>
  <ITEM><ITEMTYPE>P</ITEMTYPE><ITEMID>3001</ITEMID><COLOR>5</COLOR><QTY>2</QTY></ITEM>
  <ITEM><ITEMTYPE>P</ITEMTYPE><ITEMID>3001</ITEMID><COLOR>5</COLOR><QTY>3</QTY><REMARKS>late remark</REMARKS></ITEM>
</INVENTORY>`

	store, err := Parse(strings.NewReader(xml))
	require.NoError(t, err)

	entry, ok := store.Lookup(domain.PartRef{PartID: "3001", ColorID: 5})
	require.True(t, ok)
	assert.Equal(t, 5, entry.Quantity)
	// The first line had no remark, so the first non-empty one wins
	assert.Equal(t, "late remark", entry.Remarks)
}

func TestParse_BadQuantity(t *testing.T) {
	const xml = `<INVENTORY>
  <ITEM><ITEMTYPE>P</ITEMTYPE><ITEMID>3001</ITEMID><COLOR>5</COLOR><QTY>lots</QTY></ITEM>
</INVENTORY>`

	_, err := Parse(strings.NewReader(xml))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInventory)
}

func TestParse_NotXML(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not xml at all <<<"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInventory)
}

func TestStore_AvailabilityMiss(t *testing.T) {
	store := NewStore()
	avail := store.Availability()

	qty, price, remarks := avail(domain.PartRef{PartID: "970c00", ColorID: 11})
	assert.Equal(t, 0, qty)
	assert.True(t, price.IsZero())
	assert.Empty(t, remarks)
}
