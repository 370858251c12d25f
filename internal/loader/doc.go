// Package loader reads topology documents from disk into a catalog.
//
// Every *.json, *.yaml and *.yml file in a directory becomes one catalog
// entry. A file is parsed once at load time so errors surface immediately;
// the catalog constructor keeps the bytes and parses them again on each Get.
package loader
