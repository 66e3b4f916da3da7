package ai

import "fmt"

// Constrained prompts for the entity classifiers. Each demands the
// pipe contract that ParseVerdict understands.

func BrandPrompt(input string) string {
	return fmt.Sprintf(
		"Is '%s' a valid car brand? Respond ONLY in format: VALID|exact_name, SUGGESTION|corrected_name, INVALID|unknown",
		input,
	)
}

func ModelPrompt(input, brand string) string {
	return fmt.Sprintf(`Is '%s' a valid %s car model? Consider all variants and markets.
Respond ONLY in format:
VALID|exact_name
SUGGESTION|corrected_name
INVALID|unknown`,
		input, brand,
	)
}

func PartPrompt(input string) string {
	return fmt.Sprintf(
		"User said '%s'. Is this a car spare part? Respond ONLY in format: VALID|name, SUGGESTION|name, INVALID|unknown",
		input,
	)
}
