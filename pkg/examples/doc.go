// Package examples provides reference quirks demonstrating how to describe
// non-conforming devices with the quirks package.
//
// The examples show:
//   - Overriding an endpoint's device type and replacing a standard cluster
//     with a quirk-local implementation (WeatherSensor)
//   - Replacing an endpoint with a custom endpoint type (TwoGangSwitch)
//   - A general fallback that must be registered last (OTAFallback)
//
// Register adds all of them to a registry in specificity order, and Catalog
// exposes their named cluster types and endpoint constructors for quirk
// files.
package examples
