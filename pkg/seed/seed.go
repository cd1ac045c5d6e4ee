package seed

import (
	"log"

	"gorm.io/gorm"

	"imoveisuniao_backend/internal/model"
)

// SeedPropertyTaxonomy creates the default type/subtype classification.
func SeedPropertyTaxonomy(db *gorm.DB) {
	taxonomy := map[string][]string{
		"Residencial": {"Casa", "Apartamento", "Sobrado", "Cobertura", "Kitnet"},
		"Comercial":   {"Sala Comercial", "Loja", "Galpão", "Prédio Comercial"},
		"Rural":       {"Chácara", "Sítio", "Fazenda"},
		"Terreno":     {"Lote", "Área", "Terreno em Condomínio"},
	}

	for typeName, subtypeNames := range taxonomy {
		propertyType := model.PropertyType{Name: typeName}
		result := db.FirstOrCreate(&propertyType, model.PropertyType{Name: typeName})
		if result.Error != nil {
			log.Printf("Error creating property type %s: %v", typeName, result.Error)
			continue
		}

		for _, subtypeName := range subtypeNames {
			subtype := model.PropertySubtype{
				Name:           subtypeName,
				PropertyTypeID: propertyType.ID,
			}
			result := db.FirstOrCreate(&subtype, model.PropertySubtype{
				Name:           subtypeName,
				PropertyTypeID: propertyType.ID,
			})
			if result.Error != nil {
				log.Printf("Error creating subtype %s: %v", subtypeName, result.Error)
			}
		}
	}

	log.Println("Property taxonomy seeded successfully!")
}
