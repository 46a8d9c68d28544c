// Package quirkfile loads quirk definitions from YAML files.
//
// A file holds one or more YAML documents, each describing one quirk:
//
//	format: "1.0"
//	name: lumi.weather
//	signature:
//	  1:
//	    profile_id: 0x0104
//	    device_type: 0x5F01
//	    input_clusters: [0x0000, 0x0003, 0xFFFF]
//	    output_clusters: [0x0000, 0x0004]
//	replacement:
//	  device_type: 0x0302
//	  endpoints:
//	    1:
//	      input_clusters:
//	        - type: XiaomiBasic
//	        - 0x0402
//	    2:
//	      custom: two_gang_switch
//	      args: [right]
//
// Cluster entries are either numeric ids or {type: <name>}, where the name
// refers to a cluster type registered in a Catalog. A custom endpoint names
// a constructor registered in the same Catalog.
//
// The optional format key names the file format version; a different major
// version than version.Current is rejected.
//
// Unknown signature keys fail with quirks.ErrMalformedSignature and unknown
// replacement keys with quirks.ErrMalformedReplacement, both wrapped in a
// *quirks.ValidationError naming the quirk and field.
package quirkfile
