package constants

// RFMColumns is the fixed output column order for the RFM table.
// Downstream sheets depend on this exact sequence.
var RFMColumns = []string{
	"Name",
	"Email",
	"ID",
	"Cliente_Desde",
	"Telefono",
	"Codigo_Postal",
	"Es_Bahia_Blanca",
	"Tax_VAT_Number",
	"VAT_Number",
	"Tiene_Factura_A",
	"LTV_Gasto_Total",
	"Ticket_Promedio_Mensual",
	"Gasto_Promedio_Compra",
	"Gasto_Maximo_Compra",
	"Gasto_Minimo_Compra",
	"Frecuencia",
	"Recencia_Fecha",
	"Recencia_Dias",
	"Tiempo_Promedio_Entre_Compras",
	"Primera_Compra_Fecha",
	"Dias_Como_Cliente",
	"Ultimo_Trimestre_Compra",
	"Dia_Semana_Max_Frec",
	"Categoria_Preferida",
	"Lista_Categorias_Compradas",
	"Marca_Preferida",
	"Lista_Marcas_Compradas",
	"Total_Productos_Unicos",
	"Producto_Favorito_SKU",
	"Producto_Favorito_Nombre",
	"Producto_Favorito_Qty",
	"Historial_Ordenes_Mapeo",
}

// CartColumns is the fixed output column order for scored abandoned carts.
var CartColumns = []string{
	"Email",
	"Products",
	"Quantity",
	"Subtotal",
	"Created",
	"Updated",
	"LTV_Gasto_Total",
	"Frecuencia",
	"Recencia_Dias",
	"Ticket_Promedio_Mensual",
	"Categoria_Preferida",
	"Es_Bahia_Blanca",
	"Tiene_Factura_A",
	"Score_Intencion",
	"Segmento",
	"Tipo_Cliente",
	"Accion_Sugerida",
}
