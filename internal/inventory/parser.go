package inventory

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ganorabricks/figfinder/internal/domain"
)

// BrickLink wanted-list / store-inventory XML:
//
//	<INVENTORY>
//	  <ITEM>
//	    <ITEMTYPE>P</ITEMTYPE>
//	    <ITEMID>3626</ITEMID>
//	    <COLOR>4</COLOR>
//	    <QTY>10</QTY>
//	    <PRICE>0.25</PRICE>
//	    <REMARKS>bin 12</REMARKS>
//	  </ITEM>
//	</INVENTORY>
//
// Only parts (P) and minifigs (M) enter the store. PRICE and REMARKS are
// optional; a missing or malformed PRICE degrades to zero.
type xmlInventory struct {
	XMLName xml.Name  `xml:"INVENTORY"`
	Items   []xmlItem `xml:"ITEM"`
}

type xmlItem struct {
	ItemType string `xml:"ITEMTYPE"`
	ItemID   string `xml:"ITEMID"`
	Color    string `xml:"COLOR"`
	Qty      string `xml:"QTY"`
	Price    string `xml:"PRICE"`
	Remarks  string `xml:"REMARKS"`
}

// Parse reads a BrickLink XML inventory and builds the merged store.
func Parse(r io.Reader) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	var doc xmlInventory
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInventory, err)
	}

	store := NewStore()
	for _, item := range doc.Items {
		itemType := strings.TrimSpace(item.ItemType)
		if itemType != "P" && itemType != "M" {
			continue
		}

		itemID := strings.TrimSpace(item.ItemID)
		if itemID == "" {
			continue
		}

		colorID, err := strconv.Atoi(strings.TrimSpace(item.Color))
		if err != nil {
			return nil, fmt.Errorf("%w: bad COLOR for item %s: %v", domain.ErrInvalidInventory, itemID, err)
		}

		qty, err := strconv.Atoi(strings.TrimSpace(item.Qty))
		if err != nil {
			return nil, fmt.Errorf("%w: bad QTY for item %s: %v", domain.ErrInvalidInventory, itemID, err)
		}

		price := decimal.Zero
		if raw := strings.TrimSpace(item.Price); raw != "" {
			if parsed, err := decimal.NewFromString(raw); err == nil {
				price = parsed
			}
		}

		ref := domain.PartRef{PartID: itemID, ColorID: colorID}
		store.AddLine(ref, qty, price, strings.TrimSpace(item.Remarks))
	}

	return store, nil
}

// ParseFile reads a BrickLink XML inventory from disk.
func ParseFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
