package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Recipe is a structured recipe for a scheduled dish
type Recipe struct {
	DishName     string   `json:"dish_name"`
	Servings     int      `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     int      `json:"prep_time"` // minutes
	CookTime     int      `json:"cook_time"` // minutes
}

// GenerateRecipe drafts ingredients and instructions for a dish. The result
// is always usable: API errors and unparseable output fall back to a generic
// placeholder recipe.
func (c *Client) GenerateRecipe(ctx context.Context, dishName string, servings int) Recipe {
	if servings <= 0 {
		servings = 4
	}
	if !c.Enabled() {
		return fallbackRecipe(dishName, servings)
	}

	prompt := fmt.Sprintf(`Generate a recipe for %s (serves %d).

Return ONLY a JSON object with this exact structure (no markdown, no extra text):
{
  "dish_name": "%s",
  "servings": %d,
  "ingredients": ["ingredient 1 with quantity", "ingredient 2 with quantity"],
  "instructions": ["step 1", "step 2"],
  "prep_time": <minutes as integer>,
  "cook_time": <minutes as integer>
}

Make it practical and realistic. Use common ingredients.`, dishName, servings, dishName, servings)

	text, err := c.complete(ctx, prompt, 1500)
	if err != nil {
		log.Printf("Error generating recipe for %s: %v", dishName, err)
		return fallbackRecipe(dishName, servings)
	}

	var recipe Recipe
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &recipe); err != nil {
		log.Printf("Error parsing recipe for %s: %v", dishName, err)
		return fallbackRecipe(dishName, servings)
	}
	if len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
		return fallbackRecipe(dishName, servings)
	}
	return recipe
}

// SuggestIngredients returns a short ingredient list for a dish name
func (c *Client) SuggestIngredients(ctx context.Context, dishName string) []string {
	if !c.Enabled() {
		return fallbackIngredients(dishName)
	}

	prompt := fmt.Sprintf(`List the main ingredients needed for %s.

Return ONLY a JSON array of ingredient strings with quantities, like:
["2 cups flour", "1 lb chicken", "3 eggs"]

Keep it concise (5-10 main ingredients).`, dishName)

	text, err := c.complete(ctx, prompt, 500)
	if err != nil {
		log.Printf("Error suggesting ingredients for %s: %v", dishName, err)
		return fallbackIngredients(dishName)
	}

	var ingredients []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &ingredients); err != nil {
		log.Printf("Error parsing ingredient list for %s: %v", dishName, err)
		return fallbackIngredients(dishName)
	}
	if len(ingredients) == 0 {
		return fallbackIngredients(dishName)
	}
	return ingredients
}

func fallbackRecipe(dishName string, servings int) Recipe {
	return Recipe{
		DishName: dishName,
		Servings: servings,
		Ingredients: []string{
			fmt.Sprintf("Main ingredients for %s", dishName),
			"Seasonings (salt, pepper, etc.)",
			"Cooking oil/butter as needed",
		},
		Instructions: []string{
			"Prepare all ingredients",
			fmt.Sprintf("Cook %s according to your preferred method", dishName),
			"Season to taste and serve",
		},
		PrepTime: 15,
		CookTime: 30,
	}
}

func fallbackIngredients(dishName string) []string {
	return []string{
		fmt.Sprintf("Main ingredients for %s", dishName),
		"Seasonings (salt, pepper)",
		"Cooking oil",
	}
}
