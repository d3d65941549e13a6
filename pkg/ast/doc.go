// Package ast defines the typed UI document tree shared by the validator,
// patch engine, code generator, and preview pipeline. A Document owns an
// ordered list of component Nodes; every Node owns its children by value, so
// cloning a tree never aliases the original. The JSON codec accepts the wire
// shape produced by planning layers, where a node's children array freely
// mixes text leaves and nested component objects.
package ast
