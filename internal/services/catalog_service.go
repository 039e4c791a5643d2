package services

import (
	"threadline/internal/catalog"
	"threadline/internal/domain"
	"threadline/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
	view  *catalog.View
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods, view: catalog.NewView()}
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) Get(id int64) (domain.Product, error) {
	return s.Prods.Get(id)
}

// Filter loads the catalog and applies the criteria through the memoized view.
func (s *CatalogService) Filter(cr catalog.Criteria) ([]domain.Product, error) {
	all, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	return s.view.Apply(all, cr), nil
}

// Invalidate drops memoized views; the admin service calls this after writes.
func (s *CatalogService) Invalidate() {
	s.view.Invalidate()
}
