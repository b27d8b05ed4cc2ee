package advice

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file JSONFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	entries, err := FromJSON(file)
	if err != nil {
		return nil, err
	}
	return &Store{entries: entries}, nil
}

func EnsureLoaded(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("empty advice path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("advice path %s is a directory", path)
	}
	return Load(path)
}
