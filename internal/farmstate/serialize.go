package farmstate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmforge/engine/internal/catalog"
)

// FieldDoc/TreeDoc/Document are the wire/persisted shapes from §3 and §6:
// quantities as decimal strings, timestamps as RFC3339.

type FieldDoc struct {
	PlantedAt string `json:"plantedAt"`
	Item      string `json:"item"`
}

type TreeDoc struct {
	ChoppedAt string `json:"choppedAt"`
	Wood      string `json:"wood"`
}

type Document struct {
	Address   string              `json:"address"`
	Balance   string              `json:"balance"`
	Inventory map[string]string   `json:"inventory"`
	Stock     map[string]string   `json:"stock"`
	Fields    map[string]FieldDoc `json:"fields"`
	Trees     map[string]TreeDoc  `json:"trees"`
	Redeemed  []string            `json:"redeemed,omitempty"`
}

// ToDocument serializes s into its decimal-string wire form (§6 save
// response, §3 farm document).
func (s *State) ToDocument() Document {
	doc := Document{
		Address:   s.Address,
		Balance:   s.Balance.String(),
		Inventory: make(map[string]string, len(s.Inventory)),
		Stock:     make(map[string]string, len(s.Stock)),
		Fields:    make(map[string]FieldDoc, len(s.Fields)),
		Trees:     make(map[string]TreeDoc, len(s.Trees)),
	}
	for item, qty := range s.Inventory {
		doc.Inventory[string(item)] = qty.String()
	}
	for item, qty := range s.Stock {
		doc.Stock[string(item)] = qty.String()
	}
	for idx, field := range s.Fields {
		doc.Fields[fmt.Sprint(idx)] = FieldDoc{
			PlantedAt: field.PlantedAt.UTC().Format(time.RFC3339Nano),
			Item:      string(field.Item),
		}
	}
	for idx, tree := range s.Trees {
		doc.Trees[fmt.Sprint(idx)] = TreeDoc{
			ChoppedAt: tree.ChoppedAt.UTC().Format(time.RFC3339Nano),
			Wood:      tree.Wood.String(),
		}
	}
	for code := range s.Redeemed {
		doc.Redeemed = append(doc.Redeemed, code)
	}
	return doc
}

// FromDocument deserializes a Document back into a State. It is the
// inverse of ToDocument: for any State with finite decimals,
// FromDocument(s.ToDocument()) reproduces the same values (round-trip,
// §8).
func FromDocument(doc Document) (*State, error) {
	s := New(doc.Address)

	balance, err := decimal.NewFromString(doc.Balance)
	if err != nil {
		return nil, fmt.Errorf("farmstate: parse balance %q: %w", doc.Balance, err)
	}
	s.Balance = balance

	for name, qtyStr := range doc.Inventory {
		qty, err := decimal.NewFromString(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("farmstate: parse inventory %q=%q: %w", name, qtyStr, err)
		}
		s.Inventory[catalog.ItemName(name)] = qty
	}
	for name, qtyStr := range doc.Stock {
		qty, err := decimal.NewFromString(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("farmstate: parse stock %q=%q: %w", name, qtyStr, err)
		}
		s.Stock[catalog.ItemName(name)] = qty
	}
	for idxStr, field := range doc.Fields {
		idx, err := parseIndex(idxStr)
		if err != nil {
			return nil, fmt.Errorf("farmstate: parse field index %q: %w", idxStr, err)
		}
		plantedAt, err := time.Parse(time.RFC3339Nano, field.PlantedAt)
		if err != nil {
			return nil, fmt.Errorf("farmstate: parse field[%d].plantedAt: %w", idx, err)
		}
		s.Fields[idx] = Field{PlantedAt: plantedAt, Item: catalog.ItemName(field.Item)}
	}
	for idxStr, tree := range doc.Trees {
		idx, err := parseIndex(idxStr)
		if err != nil {
			return nil, fmt.Errorf("farmstate: parse tree index %q: %w", idxStr, err)
		}
		choppedAt, err := time.Parse(time.RFC3339Nano, tree.ChoppedAt)
		if err != nil {
			return nil, fmt.Errorf("farmstate: parse tree[%d].choppedAt: %w", idx, err)
		}
		wood, err := decimal.NewFromString(tree.Wood)
		if err != nil {
			return nil, fmt.Errorf("farmstate: parse tree[%d].wood: %w", idx, err)
		}
		s.Trees[idx] = Tree{ChoppedAt: choppedAt, Wood: wood}
	}
	for _, code := range doc.Redeemed {
		s.Redeemed[code] = struct{}{}
	}
	return s, nil
}

func parseIndex(s string) (int, error) {
	var idx int
	_, err := fmt.Sscanf(s, "%d", &idx)
	return idx, err
}
