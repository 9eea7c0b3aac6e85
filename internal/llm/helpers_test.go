package llm

var cardsSchema = &Schema{
	Name:        "test_cards",
	Description: "flashcards",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string"},
						"back":  map[string]any{"type": "string"},
					},
					"required":             []string{"front", "back"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"cards"},
		"additionalProperties": false,
	},
}

const validCards = `{"cards":[{"front":"Mitochondria","back":"Powerhouse of the cell"}]}`

func userMsg(s string) []Message {
	return []Message{{Role: RoleUser, Content: s}}
}
