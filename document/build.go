package document

import (
	"strconv"
	"strings"
)

type shape int

const (
	// single object
	one shape = iota
	// array of objects
	list
	// name -> object
	mapOf
	// name -> object, where "x-" names are extensions of the container
	mapOfExt
)

type childField struct {
	shape shape
	kind  Kind
}

// OpenAPI 3.1 object graph: for each kind, which fields hold child objects.
var childFields = map[Kind]map[string]childField{
	KindDocument: {
		"info":         {one, KindInfo},
		"servers":      {list, KindServer},
		"paths":        {mapOfExt, KindPathItem},
		"webhooks":     {mapOf, KindPathItem},
		"components":   {one, KindComponents},
		"tags":         {list, KindTag},
		"externalDocs": {one, KindExternalDocs},
	},
	KindInfo: {
		"contact": {one, KindContact},
		"license": {one, KindLicense},
	},
	KindServer: {
		"variables": {mapOf, KindServerVariable},
	},
	KindComponents: {
		"schemas":         {mapOf, KindSchema},
		"responses":       {mapOf, KindResponse},
		"parameters":      {mapOf, KindParameter},
		"examples":        {mapOf, KindExample},
		"requestBodies":   {mapOf, KindRequestBody},
		"headers":         {mapOf, KindHeader},
		"securitySchemes": {mapOf, KindSecurityScheme},
		"links":           {mapOf, KindLink},
		"callbacks":       {mapOf, KindCallback},
		"pathItems":       {mapOf, KindPathItem},
	},
	KindPathItem: {
		"get":        {one, KindOperation},
		"put":        {one, KindOperation},
		"post":       {one, KindOperation},
		"delete":     {one, KindOperation},
		"options":    {one, KindOperation},
		"head":       {one, KindOperation},
		"patch":      {one, KindOperation},
		"trace":      {one, KindOperation},
		"servers":    {list, KindServer},
		"parameters": {list, KindParameter},
	},
	KindOperation: {
		"externalDocs": {one, KindExternalDocs},
		"parameters":   {list, KindParameter},
		"requestBody":  {one, KindRequestBody},
		"responses":    {mapOfExt, KindResponse},
		"callbacks":    {mapOf, KindCallback},
		"servers":      {list, KindServer},
	},
	KindParameter: {
		"schema":   {one, KindSchema},
		"examples": {mapOf, KindExample},
		"content":  {mapOf, KindMediaType},
	},
	KindHeader: {
		"schema":   {one, KindSchema},
		"examples": {mapOf, KindExample},
		"content":  {mapOf, KindMediaType},
	},
	KindRequestBody: {
		"content": {mapOf, KindMediaType},
	},
	KindMediaType: {
		"schema":   {one, KindSchema},
		"examples": {mapOf, KindExample},
		"encoding": {mapOf, KindEncoding},
	},
	KindEncoding: {
		"headers": {mapOf, KindHeader},
	},
	KindResponse: {
		"headers": {mapOf, KindHeader},
		"content": {mapOf, KindMediaType},
		"links":   {mapOf, KindLink},
	},
	KindLink: {
		"server": {one, KindServer},
	},
	KindTag: {
		"externalDocs": {one, KindExternalDocs},
	},
	KindSecurityScheme: {
		"flows": {one, KindOAuthFlows},
	},
	KindOAuthFlows: {
		"implicit":          {one, KindOAuthFlow},
		"password":          {one, KindOAuthFlow},
		"clientCredentials": {one, KindOAuthFlow},
		"authorizationCode": {one, KindOAuthFlow},
	},
	KindSchema: {
		"$defs":                 {mapOf, KindSchema},
		"properties":            {mapOf, KindSchema},
		"patternProperties":     {mapOf, KindSchema},
		"dependentSchemas":      {mapOf, KindSchema},
		"additionalProperties":  {one, KindSchema},
		"items":                 {one, KindSchema},
		"contains":              {one, KindSchema},
		"not":                   {one, KindSchema},
		"if":                    {one, KindSchema},
		"then":                  {one, KindSchema},
		"else":                  {one, KindSchema},
		"propertyNames":         {one, KindSchema},
		"unevaluatedItems":      {one, KindSchema},
		"unevaluatedProperties": {one, KindSchema},
		"contentSchema":         {one, KindSchema},
		"allOf":                 {list, KindSchema},
		"anyOf":                 {list, KindSchema},
		"oneOf":                 {list, KindSchema},
		"prefixItems":           {list, KindSchema},
		"discriminator":         {one, KindDiscriminator},
		"xml":                   {one, KindXML},
		"externalDocs":          {one, KindExternalDocs},
	},
}

// Build returns the typed tree for a decoded OpenAPI document.
func Build(root *Object) *Node {
	return BuildKind(KindDocument, root)
}

// BuildKind returns the typed tree rooted at obj, treating obj as kind.
//
// Objects that may be replaced by a Reference Object and carry "$ref" become
// KindReference leaves. Values that are not objects where an object is
// expected (boolean schemas, for instance) produce no node.
func BuildKind(kind Kind, obj *Object) *Node {
	if obj == nil {
		obj = NewObject(0)
	}
	if refable(kind) && obj.Has("$ref") {
		kind = KindReference
	}
	n := &Node{kind: kind, obj: obj, keys: fieldKeys(kind, obj)}

	if kind == KindCallback {
		for _, expr := range obj.Keys() {
			if strings.HasPrefix(expr, "x-") {
				continue
			}
			if child, ok := obj.GetObject(expr); ok {
				n.AppendChild(BuildKind(KindPathItem, child), expr)
			}
		}
		return n
	}

	fields := childFields[kind]
	if fields == nil {
		return n
	}
	for _, key := range obj.Keys() {
		f, ok := fields[key]
		if !ok {
			continue
		}
		v, _ := obj.Get(key)
		switch f.shape {
		case one:
			if child, ok := v.(*Object); ok {
				n.AppendChild(BuildKind(f.kind, child), key)
			}
		case list:
			items, _ := v.([]any)
			for i, item := range items {
				if child, ok := item.(*Object); ok {
					n.AppendChild(BuildKind(f.kind, child), key, strconv.Itoa(i))
				}
			}
		case mapOf, mapOfExt:
			container, ok := v.(*Object)
			if !ok {
				continue
			}
			for _, name := range container.Keys() {
				if f.shape == mapOfExt && strings.HasPrefix(name, "x-") {
					continue
				}
				if child, ok := container.GetObject(name); ok {
					n.AppendChild(BuildKind(f.kind, child), key, name)
				}
			}
		}
	}
	return n
}
