// Package catalog parses and queries the vehicle price list.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/model"
)

// Catalog errors.
var (
	ErrMissingColumns = errors.New("vehicle sheet is missing required columns")
	ErrNoVehicles     = errors.New("no valid vehicles found after cleaning")
)

var requiredColumns = []string{"model", "sub model", "price", "image url"}

// Catalog is an immutable list of vehicles.
type Catalog struct {
	vehicles []model.Vehicle
}

// New builds a catalog from vehicles, dropping entries without a positive price.
func New(vehicles []model.Vehicle) *Catalog {
	kept := make([]model.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Price > 0 && !math.IsInf(v.Price, 0) {
			kept = append(kept, v)
		}
	}
	return &Catalog{vehicles: kept}
}

// Parse builds a catalog from raw spreadsheet rows. The header must contain
// model, sub model, price and image_url columns. Prices may contain thousands
// separators; rows with a missing or non-positive price are dropped. Google
// Drive share links in image_url are rewritten to direct view links.
func Parse(header []string, records [][]string) (*Catalog, error) {
	cols := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", " ")
		if _, seen := cols[normalized]; !seen {
			cols[normalized] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	vehicles := make([]model.Vehicle, 0, len(records))
	for _, record := range records {
		price, err := parsePrice(field(record, cols["price"]))
		if err != nil || price <= 0 {
			continue
		}
		modelName, subModel := field(record, cols["model"]), field(record, cols["sub model"])
		if modelName == "" || subModel == "" {
			continue
		}
		vehicles = append(vehicles, model.Vehicle{
			Model:    modelName,
			SubModel: subModel,
			Price:    price,
			ImageURL: DirectImageURL(field(record, cols["image url"])),
		})
	}

	if dropped := len(records) - len(vehicles); dropped > 0 {
		slog.Debug("Dropped vehicle rows without a model, sub model or valid price", "dropped", dropped, "total", len(records))
	}

	if len(vehicles) == 0 {
		return nil, ErrNoVehicles
	}

	return &Catalog{vehicles: vehicles}, nil
}

// Vehicles returns a copy of every vehicle in sheet order.
func (c *Catalog) Vehicles() []model.Vehicle {
	return append([]model.Vehicle(nil), c.vehicles...)
}

// Len returns the number of vehicles.
func (c *Catalog) Len() int {
	return len(c.vehicles)
}

// Models returns the distinct model names, sorted.
func (c *Catalog) Models() []string {
	return distinctSorted(c.vehicles, func(v model.Vehicle) (string, bool) {
		return v.Model, true
	})
}

// SubModels returns the distinct sub models of modelName, sorted.
func (c *Catalog) SubModels(modelName string) []string {
	return distinctSorted(c.vehicles, func(v model.Vehicle) (string, bool) {
		return v.SubModel, v.Model == modelName
	})
}

// Find returns the first vehicle matching modelName and subModel.
func (c *Catalog) Find(modelName, subModel string) (model.Vehicle, error) {
	for _, v := range c.vehicles {
		if v.Model == modelName && v.SubModel == subModel {
			return v, nil
		}
	}
	return model.Vehicle{}, fmt.Errorf("vehicle %s - %s: %w", modelName, subModel, common.ErrNotFound)
}

func distinctSorted(vehicles []model.Vehicle, pick func(model.Vehicle) (string, bool)) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range vehicles {
		name, ok := pick(v)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func parsePrice(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("price %q is not finite", s)
	}
	return v, nil
}

func field(record []string, col int) string {
	if col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}
