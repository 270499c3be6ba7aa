// Package workspace loads the MSBuild projects of a workspace.
//
// A workspace entry point is either a single project file (.csproj,
// .fsproj, .vbproj) or a solution (.sln text format or .slnx XML). Project
// files are parsed with etree and handed to the catalog as documents; the
// loader does not evaluate MSBuild imports or conditions.
//
// Loading is all or nothing: one unreadable or malformed file fails the
// whole load with a PROJECT_LOAD error.
package workspace
