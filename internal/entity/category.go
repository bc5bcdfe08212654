package entity

type BusinessCategory string

const (
	CategoryRealEstate     BusinessCategory = "real-estate"
	CategoryElectromenager BusinessCategory = "electromenager"
	CategorySales          BusinessCategory = "sales"
	CategoryMeubles        BusinessCategory = "meubles"
	CategoryElectronics    BusinessCategory = "electronics"
	CategoryAlimentation   BusinessCategory = "alimentation"
	CategorySports         BusinessCategory = "sports"
	CategoryOther          BusinessCategory = "other"
)

var BusinessCategories = []BusinessCategory{
	CategoryRealEstate,
	CategoryElectromenager,
	CategorySales,
	CategoryMeubles,
	CategoryElectronics,
	CategoryAlimentation,
	CategorySports,
	CategoryOther,
}

var categoryLabels = map[BusinessCategory]string{
	CategoryRealEstate:     "Real Estate",
	CategoryElectromenager: "Electromenager",
	CategorySales:          "Sales & Retail",
	CategoryMeubles:        "Furniture",
	CategoryElectronics:    "Electronics",
	CategoryAlimentation:   "Food & Beverage",
	CategorySports:         "Sports & Fitness",
	CategoryOther:          "Other",
}

func (c BusinessCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label devolve o nome de exibição em inglês; categorias desconhecidas voltam cruas.
func (c BusinessCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}
