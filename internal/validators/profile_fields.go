// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/MKhiriev/influence-roster/models"
)

// ItemDelimiter separates entries of an item list given as a single string.
const ItemDelimiter = ";"

// Raw input keys. Aliases cover older clients.
const (
	FieldName               = "name"
	FieldAppearance         = "appearance"
	FieldBackground         = "background"
	FieldPersonality        = "personality"
	FieldAttitude           = "attitude"
	FieldGoal               = "goal"
	FieldBenefit            = "benefit"
	FieldSpecial            = "special"
	FieldInfluenceSuccesses = "influence_successes"
	FieldSuccessesNeeded    = "successes_needed"
	FieldRevealed           = "revealed"
	FieldPhotoID            = "photo_id"
)

var (
	successesNeededAliases = []string{FieldSuccessesNeeded, "successesNeeded"}
	photoAliases           = []string{FieldPhotoID, "photoUrl", "photo_filename"}
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// Sanitize strips HTML tags and surrounding whitespace from free text.
func Sanitize(s string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(s, ""))
}

// SplitItems splits a delimited item string, trimming entries and dropping
// empty ones.
func SplitItems(s string) []string {
	parts := strings.Split(s, ItemDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = Sanitize(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FieldsFromForm folds form values into the map shape accepted by
// [ParseProfileFields]. Single values become strings, repeated values
// become string lists.
func FieldsFromForm(form url.Values) map[string]any {
	raw := make(map[string]any, len(form))
	for k, vs := range form {
		switch len(vs) {
		case 0:
		case 1:
			raw[k] = vs[0]
		default:
			raw[k] = append([]string(nil), vs...)
		}
	}
	return raw
}

// ParseProfileFields normalizes raw profile input. Keys that are absent (or
// null) stay nil in the result. Any value that cannot be coerced yields an
// error wrapping [ErrValidation].
func ParseProfileFields(raw map[string]any) (models.ProfileFields, error) {
	var fields models.ProfileFields

	textTargets := []struct {
		key string
		dst **string
	}{
		{FieldName, &fields.Name},
		{FieldAppearance, &fields.Appearance},
		{FieldBackground, &fields.Background},
		{FieldPersonality, &fields.Personality},
		{FieldAttitude, &fields.Attitude},
		{FieldGoal, &fields.Goal},
		{FieldBenefit, &fields.Benefit},
		{FieldSpecial, &fields.Special},
	}
	for _, t := range textTargets {
		v, ok := lookup(raw, t.key)
		if !ok {
			continue
		}
		s, err := parseText(v)
		if err != nil {
			return models.ProfileFields{}, fmt.Errorf("%s: %w", t.key, err)
		}
		*t.dst = &s
	}

	if v, ok := lookup(raw, FieldInfluenceSuccesses); ok {
		n, present, err := parseCount(v)
		if err != nil {
			return models.ProfileFields{}, fmt.Errorf("%s: %w", FieldInfluenceSuccesses, err)
		}
		if present {
			fields.InfluenceSuccesses = &n
		}
	}

	if v, ok := lookup(raw, successesNeededAliases...); ok {
		n, present, err := parseCount(v)
		if err != nil {
			return models.ProfileFields{}, fmt.Errorf("%s: %w", FieldSuccessesNeeded, err)
		}
		if present {
			fields.SuccessesNeeded = &n
		}
	}

	revealed, err := parseRevealedMap(raw[FieldRevealed])
	if err != nil {
		return models.ProfileFields{}, err
	}

	for _, c := range models.Categories {
		v, ok := lookup(raw, string(c))
		if !ok {
			continue
		}
		items, err := parseItems(v)
		if err != nil {
			return models.ProfileFields{}, fmt.Errorf("%s: %w", c, err)
		}
		flags := revealed[c]
		for i := range items {
			if items[i].Revealed == nil && i < len(flags) {
				flag := flags[i]
				items[i].Revealed = &flag
			}
		}
		if fields.Items == nil {
			fields.Items = make(map[models.Category][]models.ItemInput, len(models.Categories))
		}
		fields.Items[c] = items
	}

	if v, ok := lookup(raw, photoAliases...); ok {
		s, isString := v.(string)
		if !isString {
			return models.ProfileFields{}, ErrInvalidPhotoRef
		}
		id := models.PhotoIDFromReference(s)
		fields.PhotoID = &id
	}

	return fields, nil
}

// lookup returns the first non-null value stored under any of keys.
func lookup(raw map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func parseText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return Sanitize(t), nil
	case []string:
		if len(t) == 0 {
			return "", nil
		}
		return Sanitize(t[0]), nil
	default:
		return "", ErrInvalidText
	}
}

// parseCount parses a non-negative integer. An empty string counts as
// absent.
func parseCount(v any) (n int, present bool, err error) {
	switch t := v.(type) {
	case int:
		n = t
	case int64:
		n = int(t)
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || t > math.MaxInt32 {
			return 0, false, ErrInvalidNumber
		}
		n = int(t)
	case json.Number:
		i, convErr := t.Int64()
		if convErr != nil || i > math.MaxInt32 {
			return 0, false, ErrInvalidNumber
		}
		n = int(i)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false, nil
		}
		i, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, false, ErrInvalidNumber
		}
		n = i
	case []string:
		if len(t) == 0 {
			return 0, false, nil
		}
		return parseCount(t[0])
	default:
		return 0, false, ErrInvalidNumber
	}

	if n < 0 {
		return 0, false, ErrInvalidNumber
	}
	return n, true, nil
}

func parseItems(v any) ([]models.ItemInput, error) {
	switch t := v.(type) {
	case string:
		return textItems(SplitItems(t)), nil
	case []string:
		texts := make([]string, 0, len(t))
		for _, s := range t {
			texts = append(texts, SplitItems(s)...)
		}
		return textItems(texts), nil
	case []any:
		out := make([]models.ItemInput, 0, len(t))
		for _, el := range t {
			item, keep, err := parseItem(el)
			if err != nil {
				return nil, err
			}
			if keep {
				out = append(out, item)
			}
		}
		return out, nil
	default:
		return nil, ErrInvalidItemList
	}
}

func parseItem(v any) (models.ItemInput, bool, error) {
	switch t := v.(type) {
	case string:
		text := Sanitize(t)
		return models.ItemInput{Text: text}, text != "", nil
	case map[string]any:
		rawText, ok := t["text"].(string)
		if !ok {
			return models.ItemInput{}, false, ErrInvalidItem
		}
		item := models.ItemInput{Text: Sanitize(rawText)}
		if rv, has := t["revealed"]; has && rv != nil {
			b, isBool := rv.(bool)
			if !isBool {
				return models.ItemInput{}, false, ErrInvalidReveal
			}
			item.Revealed = &b
		}
		return item, item.Text != "", nil
	default:
		return models.ItemInput{}, false, ErrInvalidItem
	}
}

func textItems(texts []string) []models.ItemInput {
	out := make([]models.ItemInput, len(texts))
	for i, s := range texts {
		out[i] = models.ItemInput{Text: s}
	}
	return out
}

// parseRevealedMap reads the legacy parallel reveal map
// {"biases":[true,false], ...}.
func parseRevealedMap(v any) (map[models.Category][]bool, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrInvalidRevealedMap
	}

	out := make(map[models.Category][]bool, len(m))
	for k, rawList := range m {
		c := models.Category(k)
		if !c.Valid() {
			continue
		}
		list, isList := rawList.([]any)
		if !isList {
			return nil, ErrInvalidRevealedMap
		}
		flags := make([]bool, len(list))
		for i, el := range list {
			b, isBool := el.(bool)
			if !isBool {
				return nil, ErrInvalidRevealedMap
			}
			flags[i] = b
		}
		out[c] = flags
	}
	return out, nil
}
