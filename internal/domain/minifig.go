package domain

// RequiredPart is one line of a minifigure's parts list as fetched from the
// catalog.
type RequiredPart struct {
	PartID        string `json:"part_id"`
	PartName      string `json:"part_name"`
	ColorID       int    `json:"color_id"`
	ColorName     string `json:"color_name"`
	Quantity      int    `json:"quantity"`
	IsAlternate   bool   `json:"is_alternate"`
	IsCounterpart bool   `json:"is_counterpart"`
	IsExtra       bool   `json:"is_extra"`
	IsSpare       bool   `json:"is_spare"`
}

// Ref returns the part slot this line occupies.
func (p RequiredPart) Ref() PartRef {
	return PartRef{PartID: p.PartID, ColorID: p.ColorID}
}

// IsRegular reports whether the part participates in matching. Alternates
// and counterparts are substitutes and are never matched directly.
func (p RequiredPart) IsRegular() bool {
	return !p.IsAlternate && !p.IsCounterpart
}

// Minifig is one catalog entry: display metadata plus its required parts.
type Minifig struct {
	ID           string         `json:"minifig_id"`
	Name         string         `json:"name"`
	YearReleased *int           `json:"year_released"`
	CategoryName string         `json:"category_name"`
	Parts        []RequiredPart `json:"parts"`
}

// RegularParts returns the parts that participate in matching.
func (m *Minifig) RegularParts() []RequiredPart {
	regular := make([]RequiredPart, 0, len(m.Parts))
	for _, p := range m.Parts {
		if p.IsRegular() {
			regular = append(regular, p)
		}
	}
	return regular
}
