package config

// DefaultUnityPath is where an Expo project keeps the Unity iOS export,
// relative to the Xcode project directory.
const DefaultUnityPath = "$(PROJECT_DIR)/unity/builds/ios"

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"unity_path":     DefaultUnityPath,
		"project_file":   "",
		"project_root":   "",
		"framework_name": "UnityFramework",
	}
}
