package domain

import (
	"fmt"
	"strings"
)

// Category is one of the fixed personality archetypes a session resolves to.
// The set is closed and shared by every quiz theme.
type Category int

const (
	CategoryLion Category = iota + 1
	CategoryCat
	CategoryRabbit
	CategoryTurtle
)

// Theme selects which wording a category is presented with.
type Theme string

const (
	ThemeAnimal Theme = "animal"
	ThemeColor  Theme = "color"
)

type categoryInfo struct {
	name        string
	symbol      string
	colorName   string
	colorSymbol string
	animalText  string
	colorText   string
}

var categoryTable = map[Category]categoryInfo{
	CategoryLion: {
		name:        "lion",
		symbol:      "🦁",
		colorName:   "Red",
		colorSymbol: "🔴",
		animalText:  "You are incredibly outgoing. You surround yourself with the people you love and enjoy activities with your friends.",
		colorText:   "Red represents your passionate and energetic nature. You're action-oriented, bold, and love to take charge!",
	},
	CategoryCat: {
		name:        "cat",
		symbol:      "🐱",
		colorName:   "Purple",
		colorSymbol: "🟣",
		animalText:  "Mischievous, yet mild-tempered, you enjoy doing things on your own terms.",
		colorText:   "Purple represents your creative and mysterious personality. You're unique, imaginative, and value independence.",
	},
	CategoryRabbit: {
		name:        "rabbit",
		symbol:      "🐰",
		colorName:   "Yellow",
		colorSymbol: "🟡",
		animalText:  "You love everything that's soft. You are healthy and full of energy.",
		colorText:   "Yellow represents your cheerful and optimistic spirit. You're warm, friendly, and bring joy to others!",
	},
	CategoryTurtle: {
		name:        "turtle",
		symbol:      "🐢",
		colorName:   "Blue",
		colorSymbol: "🔵",
		animalText:  "You are wise beyond your years, and you focus on the details. Slow and steady wins the race.",
		colorText:   "Blue represents your calm and thoughtful demeanor. You're peaceful, reliable, and value harmony.",
	},
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{CategoryLion, CategoryCat, CategoryRabbit, CategoryTurtle}
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Symbol is the stable emoji persisted in result records.
func (c Category) Symbol() string {
	return categoryTable[c].symbol
}

// Name is the lowercase identifier, e.g. "lion".
func (c Category) Name() string {
	return categoryTable[c].name
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return c.Name()
}

// Label is the human facing name of the category under the given theme.
func (c Category) Label(theme Theme) string {
	info := categoryTable[c]
	if theme == ThemeColor {
		return info.colorName
	}
	return strings.ToUpper(info.name[:1]) + info.name[1:]
}

// Emoji is the icon for the category under the given theme.
func (c Category) Emoji(theme Theme) string {
	info := categoryTable[c]
	if theme == ThemeColor {
		return info.colorSymbol
	}
	return info.symbol
}

// Description is the long-form result text for the theme.
func (c Category) Description(theme Theme) string {
	info := categoryTable[c]
	if theme == ThemeColor {
		return info.colorText
	}
	return info.animalText
}

// Headline is the one-line result, e.g. "🦁 You are a 🦁!" or "🔴 You are a Red".
func (c Category) Headline(theme Theme) string {
	if theme == ThemeColor {
		return fmt.Sprintf("%s You are a %s", c.Emoji(theme), c.Label(theme))
	}
	return fmt.Sprintf("%s You are a %s!", c.Symbol(), c.Symbol())
}

// ParseCategory accepts either the symbol ("🦁") or the name ("lion").
func ParseCategory(raw string) (Category, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, c := range Categories() {
		info := categoryTable[c]
		if needle == info.symbol || needle == info.name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// MarshalText encodes the category as its symbol for JSON and YAML.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.Symbol()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseTheme defaults to the animal theme for empty input.
func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ThemeAnimal:
		return ThemeAnimal, nil
	case ThemeColor, "colour":
		return ThemeColor, nil
	}
	return "", fmt.Errorf("unknown theme %q", raw)
}
