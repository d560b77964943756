package coa

// DefaultChart returns the chart used by the construction company. Codes follow
// the classification rule in Classify; names are kept in Spanish to match the
// company's bookkeeping.
func DefaultChart() Chart {
	return NewChart(map[string]string{
		"110000": "Caja y bancos",
		"110500": "Cuentas por cobrar clientes",
		"111000": "Anticipos a proveedores",
		"112000": "IVA crédito fiscal",
		"115000": "Inventario de materiales",
		"120000": "Maquinaria y equipos",
		"121000": "Vehículos",
		"125000": "Obras en ejecución",

		"210000": "Cuentas por pagar proveedores",
		"210500": "IVA débito fiscal",
		"211000": "Remuneraciones por pagar",
		"212000": "Cotizaciones previsionales por pagar",
		"215000": "Anticipos de clientes",
		"220000": "Préstamos bancarios",

		"310000": "Capital",
		"320000": "Utilidades acumuladas",
		"330000": "Utilidad del ejercicio",

		"410000": "Ingresos por contratos de construcción",
		"411000": "Ingresos por venta de materiales",
		"420000": "Otros ingresos",

		"510000": "Costo de materiales",
		"510500": "Costo de mano de obra directa",
		"511000": "Costo de subcontratos",
		"520000": "Remuneraciones administración",
		"521000": "Arriendos y servicios",
		"522000": "Depreciación",
		"530000": "Gastos financieros",
	})
}
