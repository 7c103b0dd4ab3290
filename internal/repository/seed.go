package repository

import (
	"time"

	"github.com/TheOneTrueGod/lomithBackend/internal/types"
)

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedRecipes returns the demo data set used by the memory store and
// the seeding command. The returned slice is freshly built on every
// call so callers can mutate it freely.
func SeedRecipes() []types.Recipe {
	return []types.Recipe{
		{
			ID:          "1",
			UserID:      "1",
			Title:       "Classic Spaghetti Carbonara",
			Description: "A traditional Italian pasta dish with eggs, cheese, pancetta, and black pepper.",
			PrepTime:    15,
			CookTime:    20,
			Servings:    4,
			ImageURL:    "https://images.pexels.com/photos/4198023/pexels-photo-4198023.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Ingredients: []types.Ingredient{
				{ID: "1-1", Name: "Spaghetti", Amount: "400", Unit: "g"},
				{ID: "1-2", Name: "Pancetta", Amount: "150", Unit: "g"},
				{ID: "1-3", Name: "Egg Yolks", Amount: "6", Unit: ""},
				{ID: "1-4", Name: "Parmesan", Amount: "50", Unit: "g"},
				{ID: "1-5", Name: "Black Pepper", Amount: "1", Unit: "tsp"},
				{ID: "1-6", Name: "Salt", Amount: "", Unit: "to taste"},
			},
			Steps: []types.Step{
				{ID: "1-1", Instructions: "Bring a large pot of salted water to boil. Add the spaghetti and cook until al dente.", Ingredients: []string{"1-1", "1-6"}},
				{ID: "1-2", Instructions: "While pasta is cooking, heat a large skillet over medium heat. Add the pancetta and cook until crispy.", Ingredients: []string{"1-2"}},
				{ID: "1-3", Instructions: "In a bowl, whisk together the egg yolks, grated parmesan, and black pepper.", Ingredients: []string{"1-3", "1-4", "1-5"}},
				{ID: "1-4", Instructions: "Drain the pasta, reserving 1/2 cup of pasta water. Add pasta to the skillet with the pancetta and toss to combine.", Ingredients: []string{"1-1", "1-2"}},
				{ID: "1-5", Instructions: "Remove skillet from heat, add the egg mixture and quickly toss to coat the pasta, creating a creamy sauce. If needed, add a splash of reserved pasta water to loosen the sauce.", Ingredients: []string{"1-3", "1-4", "1-5"}},
				{ID: "1-6", Instructions: "Serve immediately with extra grated parmesan and freshly ground black pepper.", Ingredients: []string{"1-4", "1-5"}},
			},
			Tags:      []string{"Italian", "Pasta", "Quick", "Dinner"},
			CreatedAt: mustTime("2023-09-15T10:30:00Z"),
			UpdatedAt: mustTime("2023-09-15T10:30:00Z"),
		},
		{
			ID:          "2",
			UserID:      "1",
			Title:       "Avocado Toast with Poached Eggs",
			Description: "A simple, nutritious breakfast that combines creamy avocado with perfectly poached eggs.",
			PrepTime:    10,
			CookTime:    5,
			Servings:    2,
			ImageURL:    "https://images.pexels.com/photos/704569/pexels-photo-704569.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Ingredients: []types.Ingredient{
				{ID: "2-1", Name: "Bread", Amount: "2", Unit: "slices"},
				{ID: "2-2", Name: "Avocado", Amount: "1", Unit: "large"},
				{ID: "2-3", Name: "Eggs", Amount: "2", Unit: ""},
				{ID: "2-4", Name: "Vinegar", Amount: "1", Unit: "tbsp"},
				{ID: "2-5", Name: "Lemon Juice", Amount: "1", Unit: "tsp"},
				{ID: "2-6", Name: "Salt", Amount: "", Unit: "to taste"},
				{ID: "2-7", Name: "Pepper", Amount: "", Unit: "to taste"},
				{ID: "2-8", Name: "Red Pepper Flakes", Amount: "1/4", Unit: "tsp"},
			},
			Steps: []types.Step{
				{ID: "2-1", Instructions: "Fill a saucepan with water, add vinegar, and bring to a simmer.", Ingredients: []string{"2-4"}},
				{ID: "2-2", Instructions: "Crack each egg into a small bowl. Create a gentle whirlpool in the water and carefully slide in the eggs. Cook for 3-4 minutes for a runny yolk.", Ingredients: []string{"2-3"}},
				{ID: "2-3", Instructions: "While eggs are cooking, toast the bread slices until golden brown.", Ingredients: []string{"2-1"}},
				{ID: "2-4", Instructions: "Cut the avocado in half, remove the pit, and scoop the flesh into a bowl. Add lemon juice, salt, and pepper. Mash with a fork until desired consistency.", Ingredients: []string{"2-2", "2-5", "2-6", "2-7"}},
				{ID: "2-5", Instructions: "Spread the mashed avocado evenly on the toast slices.", Ingredients: []string{"2-1", "2-2"}},
				{ID: "2-6", Instructions: "Using a slotted spoon, remove the poached eggs from water and place on top of the avocado toast. Sprinkle with red pepper flakes and serve immediately.", Ingredients: []string{"2-3", "2-8"}},
			},
			Tags:      []string{"Breakfast", "Vegetarian", "Healthy", "Quick"},
			CreatedAt: mustTime("2023-10-02T08:15:00Z"),
			UpdatedAt: mustTime("2023-10-02T08:15:00Z"),
		},
		{
			ID:          "3",
			UserID:      "1",
			Title:       "Classic Chocolate Chip Cookies",
			Description: "Soft and chewy cookies with melted chocolate chips - a family favorite!",
			PrepTime:    15,
			CookTime:    12,
			Servings:    24,
			ImageURL:    "https://images.pexels.com/photos/230325/pexels-photo-230325.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			Ingredients: []types.Ingredient{
				{ID: "3-1", Name: "All-Purpose Flour", Amount: "2 1/4", Unit: "cups"},
				{ID: "3-2", Name: "Baking Soda", Amount: "1", Unit: "tsp"},
				{ID: "3-3", Name: "Salt", Amount: "1", Unit: "tsp"},
				{ID: "3-4", Name: "Unsalted Butter", Amount: "1", Unit: "cup"},
				{ID: "3-5", Name: "Brown Sugar", Amount: "3/4", Unit: "cup"},
				{ID: "3-6", Name: "Granulated Sugar", Amount: "3/4", Unit: "cup"},
				{ID: "3-7", Name: "Vanilla Extract", Amount: "1", Unit: "tsp"},
				{ID: "3-8", Name: "Eggs", Amount: "2", Unit: "large"},
				{ID: "3-9", Name: "Chocolate Chips", Amount: "2", Unit: "cups"},
			},
			Steps: []types.Step{
				{ID: "3-1", Instructions: "Preheat oven to 375°F (190°C). Line baking sheets with parchment paper.", Ingredients: []string{}},
				{ID: "3-2", Instructions: "In a small bowl, whisk together flour, baking soda, and salt.", Ingredients: []string{"3-1", "3-2", "3-3"}},
				{ID: "3-3", Instructions: "In a large bowl, beat butter, brown sugar, and granulated sugar until creamy.", Ingredients: []string{"3-4", "3-5", "3-6"}},
				{ID: "3-4", Instructions: "Add vanilla extract and eggs to the butter mixture, one at a time, beating well after each addition.", Ingredients: []string{"3-7", "3-8"}},
				{ID: "3-5", Instructions: "Gradually stir in the flour mixture until just combined. Do not overmix.", Ingredients: []string{"3-1", "3-2", "3-3"}},
				{ID: "3-6", Instructions: "Fold in the chocolate chips.", Ingredients: []string{"3-9"}},
				{ID: "3-7", Instructions: "Drop rounded tablespoons of dough onto the prepared baking sheets, spacing them about 2 inches apart.", Ingredients: []string{}},
				{ID: "3-8", Instructions: "Bake for 9-12 minutes or until edges are golden brown but centers are still soft. Cool on baking sheets for 2 minutes before transferring to wire racks to cool completely.", Ingredients: []string{}},
			},
			Tags:      []string{"Dessert", "Baking", "Cookies", "Chocolate"},
			CreatedAt: mustTime("2023-08-25T15:45:00Z"),
			UpdatedAt: mustTime("2023-08-25T15:45:00Z"),
		},
	}
}
