package catalogue

import (
	"fmt"
	"strings"
)

// The boutique catalogue is fixed. These values constrain intent
// extraction and advise filter construction; they are not enforced as
// hard validation anywhere.
var (
	Categories = []string{"Saree", "Suit Set", "Fabric", "Dupatta", "Stole"}

	Subcategories = []string{
		"Chanderi Saree", "Ajrakh Saree", "Khadi Saree",
		"Chanderi Suit", "Ajrakh Suit", "Khadi Suit",
		"Ajrakh Fabric", "Maheshwari",
	}

	Fabrics = []string{
		"Silk Cotton", "Cotton", "Chanderi", "Khadi Cotton",
		"Modal Silk", "Modal", "Indigo Cotton",
	}

	Techniques = []string{
		"Handwoven", "Ajrakh Block Print", "Ajrakh Print", "Ajrakh Natural Dye",
	}

	Colors = []string{
		"Pistachio", "Teal", "Steel Grey", "Rust", "Maroon", "Emerald",
		"Pastel Pink", "Sand Beige", "Rose", "Off White", "Sky Blue",
		"Indigo", "Pink",
	}

	Patterns = []string{
		"Geometric", "Textured", "Floral", "Stripes", "Panel", "Buta",
		"Paisley", "Solid", "Ajrakh Blocks",
	}
)

// PromptBlock renders the schema for embedding in system prompts.
func PromptBlock() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Product Categories: %s\n", strings.Join(Categories, ", ")))
	sb.WriteString(fmt.Sprintf("Subcategories: %s\n", strings.Join(Subcategories, ", ")))
	sb.WriteString(fmt.Sprintf("Fabrics: %s\n", strings.Join(Fabrics, ", ")))
	sb.WriteString(fmt.Sprintf("Techniques: %s\n", strings.Join(Techniques, ", ")))
	sb.WriteString(fmt.Sprintf("Common Colors: %s\n", strings.Join(Colors, ", ")))
	sb.WriteString(fmt.Sprintf("Patterns: %s", strings.Join(Patterns, ", ")))
	return sb.String()
}
