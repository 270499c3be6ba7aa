// Package catalog discovers the NuGet packages a workspace references and
// where each one is installed.
//
// References come from SDK-style <PackageReference> items (with central
// versions from Directory.Packages.props) and from legacy packages.config
// files. Each reference is resolved to its installed lib folder, its backup
// folder and, when one is configured, the local build output it links to.
//
// The catalog is rebuilt from disk on every invocation; nothing is cached.
package catalog
