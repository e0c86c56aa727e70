package oas31

import (
	"slices"

	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/validation"
)

// Version is the major.minor version this profile implements.
const Version = "3.1"

// Extra feature flags.
const (
	FeaturePruneEmpty       = "pruneEmpty"
	FeaturePreserveServers  = "preserveEmpty.servers"
	FeaturePreserveSecurity = "preserveEmpty.security"
	FeaturePreserveTags     = "preserveEmpty.tags"
)

var allowedKeys = map[document.Kind][]string{
	document.KindDocument: {
		"openapi", "info", "jsonSchemaDialect", "servers", "paths", "webhooks",
		"components", "security", "tags", "externalDocs", "x-",
	},
	document.KindInfo:           {"title", "summary", "description", "termsOfService", "contact", "license", "version", "x-"},
	document.KindContact:        {"name", "url", "email", "x-"},
	document.KindLicense:        {"name", "identifier", "url", "x-"},
	document.KindServer:         {"url", "description", "variables", "x-"},
	document.KindServerVariable: {"enum", "default", "description", "x-"},
	document.KindComponents: {
		"schemas", "responses", "parameters", "examples", "requestBodies", "headers",
		"securitySchemes", "links", "callbacks", "pathItems", "x-",
	},
	document.KindSchema: {
		// core
		"$id", "$schema", "$anchor", "$ref", "$defs", "$comment", "$dynamicRef", "$dynamicAnchor",
		// applicator and validation
		"type", "properties", "patternProperties", "additionalProperties", "items",
		"allOf", "anyOf", "oneOf", "not", "const", "enum", "required",
		"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
		"minLength", "maxLength", "pattern", "format",
		"contentMediaType", "contentEncoding", "contentSchema",
		"minItems", "maxItems", "uniqueItems", "contains",
		"minProperties", "maxProperties", "dependentSchemas", "dependentRequired",
		"prefixItems", "unevaluatedItems", "unevaluatedProperties",
		"if", "then", "else", "propertyNames",
		// metadata
		"default", "examples", "title", "description", "readOnly", "writeOnly", "deprecated",
		// OpenAPI vocabulary; no "nullable" in 3.1
		"discriminator", "xml", "externalDocs", "example",
		"x-",
	},
	document.KindDiscriminator: {"propertyName", "mapping", "x-"},
	document.KindXML:           {"name", "namespace", "prefix", "attribute", "wrapped", "x-"},
	document.KindExternalDocs:  {"description", "url", "x-"},
	document.KindPathItem: {
		"$ref", "summary", "description", "get", "put", "post", "delete", "options",
		"head", "patch", "trace", "servers", "parameters", "x-",
	},
	document.KindOperation: {
		"tags", "summary", "description", "externalDocs", "operationId", "parameters",
		"requestBody", "responses", "callbacks", "deprecated", "security", "servers", "x-",
	},
	document.KindParameter: {
		"name", "in", "description", "required", "deprecated", "allowEmptyValue", "style",
		"explode", "allowReserved", "schema", "example", "examples", "content", "x-",
	},
	document.KindRequestBody: {"description", "content", "required", "x-"},
	document.KindMediaType:   {"schema", "example", "examples", "encoding", "x-"},
	document.KindEncoding:    {"contentType", "headers", "style", "explode", "allowReserved", "x-"},
	document.KindHeader: {
		"description", "required", "deprecated", "allowEmptyValue", "style", "explode",
		"allowReserved", "schema", "example", "examples", "content", "x-",
	},
	document.KindResponse:       {"description", "headers", "content", "links", "x-"},
	document.KindExample:        {"summary", "description", "value", "externalValue", "x-"},
	document.KindLink:           {"operationRef", "operationId", "parameters", "requestBody", "description", "server", "x-"},
	document.KindCallback:       {"x-"},
	document.KindReference:      {"$ref", "summary", "description"},
	document.KindSecurityScheme: {"type", "description", "name", "in", "scheme", "bearerFormat", "flows", "openIdConnectUrl", "x-"},
	document.KindOAuthFlows:     {"implicit", "password", "clientCredentials", "authorizationCode", "x-"},
	document.KindOAuthFlow:      {"authorizationUrl", "tokenUrl", "refreshUrl", "scopes", "x-"},
	document.KindTag:            {"name", "description", "externalDocs", "x-"},
}

var requiredKeys = map[document.Kind][]string{
	document.KindDocument:       {"openapi", "info"},
	document.KindInfo:           {"title", "version"},
	document.KindServerVariable: {"default"},
	document.KindResponse:       {"description"},
	document.KindReference:      {"$ref"},
}

// Profile is the OpenAPI 3.1 validation profile. It is immutable and safe
// for concurrent use.
type Profile struct {
	features validation.FeatureSet
	extras   []validation.NodeValidator
}

var _ validation.SpecProfile = (*Profile)(nil)

// New returns the OpenAPI 3.1 profile.
func New() *Profile {
	return &Profile{
		features: validation.NewFeatureSet(true, true, true, map[string]any{
			FeaturePruneEmpty:       true,
			FeaturePreserveServers:  true,
			FeaturePreserveSecurity: true,
			FeaturePreserveTags:     true,
		}),
		extras: []validation.NodeValidator{
			NullableKeywordRule{},
			DialectRule{},
		},
	}
}

// MajorMinor returns "3.1".
func (p *Profile) MajorMinor() string { return Version }

// Features returns the 3.1 feature set.
func (p *Profile) Features() validation.FeatureSet { return p.features }

// AllowedKeysFor returns the permitted keys of kind. Kinds the profile does
// not model permit only extensions.
func (p *Profile) AllowedKeysFor(kind document.Kind) []string {
	if keys, ok := allowedKeys[kind]; ok {
		return slices.Clone(keys)
	}
	return []string{validation.ExtensionWildcard}
}

// RequiredKeysFor returns the keys kind must carry.
func (p *Profile) RequiredKeysFor(kind document.Kind) []string {
	return slices.Clone(requiredKeys[kind])
}

// NormalizeKey returns key unchanged.
func (p *Profile) NormalizeKey(_ document.Kind, key string) string { return key }

// ExtraValidators returns the nullable and dialect rules.
func (p *Profile) ExtraValidators() []validation.NodeValidator {
	return slices.Clone(p.extras)
}

// Kinds returns the kinds with an explicit key table.
func (p *Profile) Kinds() []document.Kind {
	kinds := make([]document.Kind, 0, len(allowedKeys))
	for k := range allowedKeys {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
