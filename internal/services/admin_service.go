package services

import (
	"threadline/internal/domain"
	"threadline/internal/repos"
	"threadline/internal/validate"
)

// AdminService fronts catalog writes: validate first, then write, then drop
// memoized views. A rejected input issues no write and consumes no id.
type AdminService struct {
	Prods   *repos.ProductRepo
	Catalog *CatalogService
}

func NewAdminService(prods *repos.ProductRepo, cat *CatalogService) *AdminService {
	return &AdminService{Prods: prods, Catalog: cat}
}

// Create validates and inserts. Field errors come back in the map; the error
// return is reserved for store failures.
func (s *AdminService) Create(in domain.ProductInput) (domain.Product, map[string]string, error) {
	if errs := validate.Product(in); len(errs) > 0 {
		return domain.Product{}, errs, nil
	}
	p, err := s.Prods.Create(in)
	if err != nil {
		return domain.Product{}, nil, err
	}
	s.Catalog.Invalidate()
	return p, nil, nil
}

func (s *AdminService) Update(id int64, in domain.ProductInput) (map[string]string, error) {
	if errs := validate.Product(in); len(errs) > 0 {
		return errs, nil
	}
	if err := s.Prods.Update(id, in); err != nil {
		return nil, err
	}
	s.Catalog.Invalidate()
	return nil, nil
}

func (s *AdminService) Delete(id int64) error {
	if err := s.Prods.Delete(id); err != nil {
		return err
	}
	s.Catalog.Invalidate()
	return nil
}
