package utils

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// JSONToMap convert datatypes.JSON to map[string]interface{}
func JSONToMap(jsonData datatypes.JSON) (map[string]interface{}, error) {
	if len(jsonData) == 0 {
		return map[string]interface{}{}, nil
	}
	var result map[string]interface{}
	err := json.Unmarshal(jsonData, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MapToJSON convert map[string]interface{} to datatypes.JSON
func MapToJSON(data map[string]interface{}) (datatypes.JSON, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return jsonData, nil
}
