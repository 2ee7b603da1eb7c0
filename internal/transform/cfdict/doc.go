// Package cfdict renders iam entities into the nested mappings used as
// CloudFormation resource declarations.
//
// Optional and collection properties are emitted only when set and
// non-empty. Name sets are emitted as sorted lists. Inputs are never
// modified and every emitted slice is a fresh copy.
package cfdict
