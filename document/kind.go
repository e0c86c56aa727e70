package document

// Kind tags a node with the OpenAPI object type it represents.
type Kind string

// Node kinds of an OpenAPI 3.1 document.
const (
	KindDocument       Kind = "OpenApiDocument"
	KindInfo           Kind = "Info"
	KindContact        Kind = "Contact"
	KindLicense        Kind = "License"
	KindServer         Kind = "Server"
	KindServerVariable Kind = "ServerVariable"
	KindComponents     Kind = "Components"
	KindPathItem       Kind = "PathItem"
	KindOperation      Kind = "Operation"
	KindExternalDocs   Kind = "ExternalDocumentation"
	KindParameter      Kind = "Parameter"
	KindRequestBody    Kind = "RequestBody"
	KindMediaType      Kind = "MediaType"
	KindEncoding       Kind = "Encoding"
	KindResponse       Kind = "Response"
	KindCallback       Kind = "Callback"
	KindExample        Kind = "Example"
	KindLink           Kind = "Link"
	KindHeader         Kind = "Header"
	KindTag            Kind = "Tag"
	KindReference      Kind = "Reference"
	KindSchema         Kind = "Schema"
	KindDiscriminator  Kind = "Discriminator"
	KindXML            Kind = "Xml"
	KindSecurityScheme Kind = "SecurityScheme"
	KindOAuthFlows     Kind = "OAuthFlows"
	KindOAuthFlow      Kind = "OAuthFlow"
)

// String returns the kind's name as used in profile tables.
func (k Kind) String() string {
	return string(k)
}

// Kinds returns every kind this package can produce, in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindDocument, KindInfo, KindContact, KindLicense, KindServer,
		KindServerVariable, KindComponents, KindPathItem, KindOperation,
		KindExternalDocs, KindParameter, KindRequestBody, KindMediaType,
		KindEncoding, KindResponse, KindCallback, KindExample, KindLink,
		KindHeader, KindTag, KindReference, KindSchema, KindDiscriminator,
		KindXML, KindSecurityScheme, KindOAuthFlows, KindOAuthFlow,
	}
}

// refable reports whether an object of kind k may be replaced by a
// Reference Object. Schema and PathItem carry $ref as a regular field.
func refable(k Kind) bool {
	switch k {
	case KindResponse, KindParameter, KindExample, KindRequestBody,
		KindHeader, KindSecurityScheme, KindLink, KindCallback:
		return true
	}
	return false
}
