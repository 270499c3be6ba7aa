// Package config loads nulink's layered configuration.
//
// Layers are merged in order, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config, $XDG_CONFIG_HOME/nulink/config.toml
//  3. the workspace config, .nulink.toml next to the project or solution
//  4. NULINK_* environment variables (NULINK_PACKAGES_ROOT -> packages.root)
//
// The [sources] table maps package ids to local sources. Package ids
// contain dots, so they must be quoted keys:
//
//	[sources]
//	"Acme.Widgets" = "../widgets/src/Acme.Widgets/Acme.Widgets.csproj"
package config
