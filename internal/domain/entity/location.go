package entity

// Location es el par concreto (sede, ubicación interna) donde vive el stock.
// BinID nil significa que el stock está a nivel de sede (bodega completa).
type Location struct {
	SiteID string
	BinID  *string
}

// Equal compara sede y bin (nil == nil).
func (l Location) Equal(o Location) bool {
	if l.SiteID != o.SiteID {
		return false
	}
	if l.BinID == nil || o.BinID == nil {
		return l.BinID == nil && o.BinID == nil
	}
	return *l.BinID == *o.BinID
}

// String devuelve "site" o "site/bin", útil para logs y llaves.
func (l Location) String() string {
	if l.BinID == nil {
		return l.SiteID
	}
	return l.SiteID + "/" + *l.BinID
}

// Site representa una sede o bodega (nivel grueso).
type Site struct {
	ID       string
	TenantID string
	Name     string
}

// Bin representa una ubicación interna de una sede (estante, pasillo, etc.).
// Siempre pertenece a exactamente una sede.
type Bin struct {
	ID       string
	TenantID string
	SiteID   string
	Code     string
}
