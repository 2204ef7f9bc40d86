package services

import (
	"errors"
	"fmt"

	"technest/internal/catalog"
	"technest/internal/domain"
	"technest/internal/repos"
)

var ErrInvalidProduct = errors.New("invalid product")

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// List loads the catalog and runs it through the pure filter/sort
// pipeline. An empty catalog yields an empty slice, not an error.
func (s *CatalogService) List(c catalog.Criteria) ([]domain.Product, error) {
	all, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	return catalog.Apply(all, c), nil
}

func (s *CatalogService) Get(id int) (domain.Product, error) {
	return s.Prods.Get(id)
}

// CreateInput carries the flat create payload; the category-specific
// spec fields are flattened into key-value rows on insert.
type CreateInput struct {
	Name        string  `json:"name"`
	Price       int     `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Brand       string  `json:"brand"`

	// Smartphone specs
	Chipset       string  `json:"chipset"`
	RamGB         int     `json:"ram_gb"`
	RomValue      int     `json:"rom_value"`
	RomUnit       string  `json:"rom_unit"`
	DisplayInch   float64 `json:"display_inch"`
	RefreshRateHz int     `json:"refresh_rate_hz"`
	Battery       string  `json:"battery"`
	Camera        string  `json:"camera"`
	OsName        string  `json:"os_name"`
	OsVersion     string  `json:"os_version"`

	// Laptop specs
	CPU         string `json:"cpu"`
	GPU         string `json:"gpu"`
	StorageType string `json:"storage_type"`
}

func (s *CatalogService) Create(in CreateInput) (domain.Product, error) {
	if in.Name == "" || in.Price <= 0 || in.Stock < 0 {
		return domain.Product{}, ErrInvalidProduct
	}
	if !domain.ValidCategory(in.Category) {
		return domain.Product{}, ErrInvalidProduct
	}
	if in.Rating < 0 || in.Rating > 5 {
		return domain.Product{}, ErrInvalidProduct
	}

	id, err := s.Prods.Create(domain.Product{
		Name: in.Name, Price: in.Price, Stock: in.Stock, Category: in.Category,
		Rating: in.Rating, Description: in.Description, Image: in.Image, Brand: in.Brand,
	})
	if err != nil {
		return domain.Product{}, err
	}

	order := 1
	for _, sp := range specRows(in) {
		if err := s.Prods.InsertSpec(id, sp.Key, sp.Value, order); err != nil {
			return domain.Product{}, err
		}
		order++
	}
	return s.Prods.Get(id)
}

func (s *CatalogService) Update(p domain.Product) (domain.Product, error) {
	if p.Name == "" || p.Price <= 0 || !domain.ValidCategory(p.Category) {
		return domain.Product{}, ErrInvalidProduct
	}
	ok, err := s.Prods.Update(p)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return s.Prods.Get(p.ID)
}

func (s *CatalogService) Delete(id int) error {
	ok, err := s.Prods.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// specRows builds the detail-page rows from whichever category payload
// was filled in; empty values are dropped by InsertSpec.
func specRows(in CreateInput) []domain.ProductSpec {
	rows := []domain.ProductSpec{
		{Key: "Chipset", Value: in.Chipset},
		{Key: "CPU", Value: in.CPU},
		{Key: "GPU", Value: in.GPU},
		{Key: "RAM", Value: fmtIf(in.RamGB > 0, "%dGB", in.RamGB)},
		{Key: "Storage", Value: fmtStorage(in.RomValue, in.RomUnit, in.StorageType)},
		{Key: "Display", Value: fmtDisplay(in.DisplayInch, in.RefreshRateHz)},
		{Key: "Battery", Value: in.Battery},
		{Key: "Camera", Value: in.Camera},
		{Key: "Operating System", Value: fmtOS(in.OsName, in.OsVersion)},
	}
	return rows
}

func fmtIf(cond bool, format string, args ...any) string {
	if !cond {
		return ""
	}
	return fmt.Sprintf(format, args...)
}

func fmtStorage(value int, unit, storageType string) string {
	if value <= 0 {
		return ""
	}
	if unit == "" {
		unit = "GB"
	}
	out := fmt.Sprintf("%d%s", value, unit)
	if storageType != "" {
		out += " " + storageType
	}
	return out
}

func fmtDisplay(inch float64, hz int) string {
	if inch <= 0 {
		return ""
	}
	out := fmt.Sprintf(`%.1f"`, inch)
	if hz > 0 {
		out += fmt.Sprintf(" %dHz", hz)
	}
	return out
}

func fmtOS(name, version string) string {
	if name == "" {
		return ""
	}
	if version == "" {
		return name
	}
	return name + " " + version
}
