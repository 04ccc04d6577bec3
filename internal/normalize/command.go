package normalize

import (
	"strings"

	"neuronwatch"
)

// commandKind maps any spelling of a provisioning operation
// ("load_model", "LoadModel", "load-model") to its canonical kind.
func commandKind(name string) (neuronwatch.CommandKind, bool) {
	folded := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(name))
	switch folded {
	case "upsertmodelconfig":
		return neuronwatch.CommandUpsertModelConfig, true
	case "loadmodel":
		return neuronwatch.CommandLoadModel, true
	case "unloadmodel":
		return neuronwatch.CommandUnloadModel, true
	}
	return "", false
}

// Command normalizes a provisioning command in either the explicit-kind shape
// ({"kind": "load_model", "model_id": ...}) or the legacy single-key shape
// ({"LoadModel": ...}). Unrecognized shapes become an upsert carrying the raw
// payload so nothing is dropped.
func Command(v any) neuronwatch.Command {
	obj, ok := v.(map[string]any)
	if !ok {
		return neuronwatch.UpsertModelConfig(v)
	}

	if name, ok := obj["kind"].(string); ok {
		kind, known := commandKind(name)
		if !known {
			return neuronwatch.UpsertModelConfig(v)
		}
		switch kind {
		case neuronwatch.CommandLoadModel:
			return neuronwatch.LoadModel(ModelID(firstOf(obj, "model_id", "model")))
		case neuronwatch.CommandUnloadModel:
			return neuronwatch.UnloadModel(ModelID(firstOf(obj, "model_id", "model")))
		default:
			if cfg, ok := obj["config"]; ok {
				return neuronwatch.UpsertModelConfig(cfg)
			}
			return neuronwatch.UpsertModelConfig(without(obj, "kind"))
		}
	}

	if len(obj) == 1 {
		for name, payload := range obj {
			kind, known := commandKind(name)
			if !known {
				break
			}
			switch kind {
			case neuronwatch.CommandLoadModel:
				return neuronwatch.LoadModel(legacyModelID(payload))
			case neuronwatch.CommandUnloadModel:
				return neuronwatch.UnloadModel(legacyModelID(payload))
			default:
				return neuronwatch.UpsertModelConfig(payload)
			}
		}
	}
	return neuronwatch.UpsertModelConfig(v)
}

// legacyModelID accepts {"LoadModel": "id"} as well as {"LoadModel": {"model_id": "id"}}.
func legacyModelID(payload any) string {
	if obj, ok := payload.(map[string]any); ok {
		if id, ok := obj["model_id"]; ok {
			return ModelID(id)
		}
	}
	return ModelID(payload)
}

// without returns a copy of obj minus key, or nil when nothing remains.
func without(obj map[string]any, key string) any {
	rest := make(map[string]any, len(obj))
	for k, v := range obj {
		if k != key {
			rest[k] = v
		}
	}
	if len(rest) == 0 {
		return nil
	}
	return rest
}
