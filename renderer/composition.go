package renderer

import (
	"github.com/etnz/fund"
	md "github.com/nao1215/markdown"
)

// compositionTable renders the holdings of a composition. withChange selects
// the price change column of the daily view, otherwise the weight and sector
// columns of the monthly view are rendered.
func compositionTable(c *fund.Composition, withChange bool) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Ticker", "Quantity", "Price", "Value"},
	}
	if withChange {
		table.Header = append(table.Header, "Change")
	} else {
		table.Header = append(table.Header, "Weight", "Sector")
		table.Alignment = append(table.Alignment, md.AlignLeft)
	}
	for _, h := range c.Holdings {
		price, value := "N/A", "N/A"
		if h.Priced {
			price, value = h.Price.String(), h.Value.String()
		}
		row := []string{h.Ticker, h.Quantity.String(), price, value}
		if withChange {
			row = append(row, change(h.Change))
		} else {
			sector := h.Sector
			if sector == "" {
				sector = "-"
			}
			row = append(row, weight(h.Weight), sector)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// sectorTable renders the weights per sector.
func sectorTable(sectors []fund.SectorWeight) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Sector", "Weight"},
	}
	for _, s := range sectors {
		name := s.Sector
		if name == "" {
			name = "-"
		}
		table.Rows = append(table.Rows, []string{name, weight(s.Weight)})
	}
	return table
}
