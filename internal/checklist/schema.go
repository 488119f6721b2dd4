package checklist

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed items.schema.json
var itemsSchemaJSON string

const itemsSchemaURL = "https://packlist.invalid/items.schema.json"

var (
	itemsSchemaOnce sync.Once
	itemsSchema     *jsonschema.Schema
	itemsSchemaErr  error
)

func compiledItemsSchema() (*jsonschema.Schema, error) {
	itemsSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(itemsSchemaURL, strings.NewReader(itemsSchemaJSON)); err != nil {
			itemsSchemaErr = fmt.Errorf("add items schema: %w", err)
			return
		}
		itemsSchema, itemsSchemaErr = compiler.Compile(itemsSchemaURL)
		if itemsSchemaErr != nil {
			itemsSchemaErr = fmt.Errorf("compile items schema: %w", itemsSchemaErr)
		}
	})
	return itemsSchema, itemsSchemaErr
}

// validateStructure checks a decoded JSON document against the item schema
// and returns a short description of the first violation.
func validateStructure(doc any) error {
	schema, err := compiledItemsSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return errors.New(firstSchemaViolation(ve))
		}
		return err
	}
	return nil
}

func firstSchemaViolation(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	location := ve.InstanceLocation
	if location == "" {
		location = "/"
	}
	return fmt.Sprintf("at %s: %s", location, ve.Message)
}
