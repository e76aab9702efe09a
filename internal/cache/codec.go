package cache

import (
	"encoding/json"
	"fmt"
)

func encode(value any) (json.RawMessage, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeValue, err)
	}
	return raw, nil
}

func decode(raw json.RawMessage, dst any) (bool, error) {
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: %w", ErrDecodeValue, err)
	}
	return true, nil
}

func validateNamespace(ns NamespaceConfig) error {
	if ns.Name == "" || ns.TTL <= 0 {
		return fmt.Errorf("%w: name=%q ttl=%s", ErrInvalidNamespace, ns.Name, ns.TTL)
	}
	return nil
}
