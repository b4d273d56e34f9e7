package entity

// Item es la vista mínima del catálogo que necesita el libro de inventario.
// El catálogo completo (precios, atributos) vive fuera de este núcleo.
type Item struct {
	ID         string
	TenantID   string
	SKU        string
	Name       string
	DefaultUOM string // unidad de medida por defecto (UND, KG, ...)
}
