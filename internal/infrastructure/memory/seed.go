package memory

import "github.com/jhoicas/procura-api/internal/domain/entity"

// SeedDemo carga un catálogo mínimo para correr la API sin PostgreSQL (APP_STORAGE=memory).
func SeedDemo(s *Store, tenantID string) error {
	s.AddItem(entity.Item{ID: "item-tornillo", TenantID: tenantID, SKU: "TOR-001", Name: "Tornillo 1/4", DefaultUOM: "UND"})
	s.AddItem(entity.Item{ID: "item-cemento", TenantID: tenantID, SKU: "CEM-050", Name: "Cemento 50kg", DefaultUOM: "BUL"})
	s.AddSite(entity.Site{ID: "site-principal", TenantID: tenantID, Name: "Bodega principal"})
	s.AddSite(entity.Site{ID: "site-norte", TenantID: tenantID, Name: "Bodega norte"})
	for _, b := range []entity.Bin{
		{ID: "bin-principal-a1", TenantID: tenantID, SiteID: "site-principal", Code: "A-01"},
		{ID: "bin-principal-a2", TenantID: tenantID, SiteID: "site-principal", Code: "A-02"},
	} {
		if err := s.AddBin(b); err != nil {
			return err
		}
	}
	return nil
}
