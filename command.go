package neuronwatch

// CommandKind names a provisioning operation.
type CommandKind string

const (
	CommandUpsertModelConfig CommandKind = "upsert_model_config"
	CommandLoadModel         CommandKind = "load_model"
	CommandUnloadModel       CommandKind = "unload_model"
)

// Command is a normalized provisioning command. ModelID is set for load/unload,
// Config for upsert.
type Command struct {
	Kind    CommandKind `json:"kind"`
	ModelID string      `json:"model_id,omitempty"`
	Config  any         `json:"config,omitempty"`
}

// LoadModel builds a load_model command.
func LoadModel(modelID string) Command {
	return Command{Kind: CommandLoadModel, ModelID: modelID}
}

// UnloadModel builds an unload_model command.
func UnloadModel(modelID string) Command {
	return Command{Kind: CommandUnloadModel, ModelID: modelID}
}

// UpsertModelConfig builds an upsert_model_config command carrying an opaque payload.
func UpsertModelConfig(config any) Command {
	return Command{Kind: CommandUpsertModelConfig, Config: config}
}
