package config

import (
	"reflect"
	"strings"
)

// WithDefaults returns s with every unset optional field holding the value
// its getter falls back to
func WithDefaults(s Settings) Settings {
	v := reflect.ValueOf(&s).Elem()
	getters := reflect.ValueOf(s)

	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		if field.Type.Kind() != reflect.Ptr || !v.Field(i).IsNil() {
			continue
		}
		getter := getters.MethodByName("Get" + field.Name)
		if !getter.IsValid() {
			continue
		}
		value := getter.Call(nil)[0]
		ptr := reflect.New(field.Type.Elem())
		ptr.Elem().Set(value.Convert(field.Type.Elem()))
		v.Field(i).Set(ptr)
	}
	return s
}

// exampleSettings fills every optional field with its default so the
// example stays in sync with the getters
func exampleSettings() Settings {
	t := true
	f := false
	return WithDefaults(Settings{Debug: &f, LidarMode: &t})
}

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	s := exampleSettings()
	v := reflect.ValueOf(s)
	t := v.Type()
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}

		// Extract the JSON field name (before comma)
		jsonName := strings.Split(jsonTag, ",")[0]

		example[jsonName] = generateExampleValue(field, v.Field(i))
	}

	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(field reflect.StructField, value reflect.Value) any {
	switch field.Type.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return value.Elem().Interface()
	case reflect.String:
		if field.Name == "DataDir" {
			return "~/.rgbdslam/scans"
		}
		return ""
	case reflect.Map:
		return map[string]any{
			"record": "r",
			"help":   []string{"?", "H"},
		}
	}
	return nil
}
