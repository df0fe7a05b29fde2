// Package buildsettings models Xcode build setting values and the patch
// unitylink applies to every build configuration.
//
// A setting is read through the Settings interface as a Value, which is one
// of three shapes:
//   - Absent: the key is not set (or set to an empty string)
//   - Scalar: a single string such as NO or $(inherited)
//   - List: an ordered list of strings such as ("$(inherited)", "/a/b")
//
// Merging happens on parsed Values only. Conversion to and from a concrete
// document representation lives at the boundary: RawSettings for the
// quoted-text form used by the xcode npm package, PlistSettings for the
// typed object graph decoded from project.pbxproj.
package buildsettings
