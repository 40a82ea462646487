// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package vocabulary holds the AMF namespace IRIs and the class and property
// IRIs read by the graph store.
//
// All constants are expanded IRIs. Documents written in compact form
// ("apiContract:endpoint") are matched through their @context, see
// graph.Document.Key.
package vocabulary

import "strings"

// Namespaces
const (
	Document    = "http://a.ml/vocabularies/document#"
	Core        = "http://a.ml/vocabularies/core#"
	APIContract = "http://a.ml/vocabularies/apiContract#"
	Shapes      = "http://a.ml/vocabularies/shapes#"
	Security    = "http://a.ml/vocabularies/security#"
	Data        = "http://a.ml/vocabularies/data#"
	Shacl       = "http://www.w3.org/ns/shacl#"
	XSD         = "http://www.w3.org/2001/XMLSchema#"
	RDFS        = "http://www.w3.org/2000/01/rdf-schema#"
)

// Document model
const (
	DocDocument   = Document + "Document"
	DocFragment   = Document + "Fragment"
	DocModule     = Document + "Module"
	DocUnit       = Document + "Unit"
	DocEncodes    = Document + "encodes"
	DocDeclares   = Document + "declares"
	DocReferences = Document + "references"
)

// Core properties
const (
	CoreName           = Core + "name"
	CoreDisplayName    = Core + "displayName"
	CoreDescription    = Core + "description"
	CoreSummary        = Core + "summary"
	CoreVersion        = Core + "version"
	CoreTitle          = Core + "title"
	CoreURL            = Core + "url"
	CoreURLTemplate    = Core + "urlTemplate"
	CoreMediaType      = Core + "mediaType"
	CoreDocumentation  = Core + "documentation"
	CoreProvider       = Core + "provider"
	CoreLicense        = Core + "license"
	CoreTermsOfService = Core + "termsOfService"
	CoreEmail          = Core + "email"
	CoreDeprecated     = Core + "deprecated"
	CoreCreativeWork   = Core + "CreativeWork"
	CoreOrganization   = Core + "Organization"
)

// API contract classes and properties
const (
	APIWebAPI             = APIContract + "WebAPI"
	APIAsyncAPI           = APIContract + "AsyncAPI"
	APIEndPoint           = APIContract + "EndPoint"
	APIOperation          = APIContract + "Operation"
	APIRequest            = APIContract + "Request"
	APIResponse           = APIContract + "Response"
	APIPayload            = APIContract + "Payload"
	APIParameter          = APIContract + "Parameter"
	APIServer             = APIContract + "Server"
	APITag                = APIContract + "Tag"
	APIEndpoint           = APIContract + "endpoint"
	APIPath               = APIContract + "path"
	APISupportedOperation = APIContract + "supportedOperation"
	APIMethod             = APIContract + "method"
	APIOperationID        = APIContract + "operationId"
	APIExpects            = APIContract + "expects"
	APIReturns            = APIContract + "returns"
	APIStatusCode         = APIContract + "statusCode"
	APIPayloadKey         = APIContract + "payload"
	APIParameterKey       = APIContract + "parameter"
	APIHeader             = APIContract + "header"
	APIURIParameter       = APIContract + "uriParameter"
	APICookieParameter    = APIContract + "cookieParameter"
	APIParamName          = APIContract + "paramName"
	APIRequired           = APIContract + "required"
	APIBinding            = APIContract + "binding"
	APIServerKey          = APIContract + "server"
	APIVariable           = APIContract + "variable"
	APIScheme             = APIContract + "scheme"
	APIAccepts            = APIContract + "accepts"
	APIContentType        = APIContract + "contentType"
	APITagKey             = APIContract + "tag"
)

// Shapes
const (
	ShaclNodeShape     = Shacl + "NodeShape"
	ShaclPropertyShape = Shacl + "PropertyShape"
	ShaclProperty      = Shacl + "property"
	ShaclPath          = Shacl + "path"
	ShaclName          = Shacl + "name"
	ShaclDatatype      = Shacl + "datatype"
	ShaclMinCount      = Shacl + "minCount"
	ShaclMaxCount      = Shacl + "maxCount"
	ShaclPattern       = Shacl + "pattern"
	ShaclMinLength     = Shacl + "minLength"
	ShaclMaxLength     = Shacl + "maxLength"
	ShaclIn            = Shacl + "in"
	ShaclAnd           = Shacl + "and"
	ShaclOr            = Shacl + "or"
	ShaclXone          = Shacl + "xone"
	ShaclClosed        = Shacl + "closed"

	ShapesAnyShape       = Shapes + "AnyShape"
	ShapesScalarShape    = Shapes + "ScalarShape"
	ShapesArrayShape     = Shapes + "ArrayShape"
	ShapesMatrixShape    = Shapes + "MatrixShape"
	ShapesTupleShape     = Shapes + "TupleShape"
	ShapesUnionShape     = Shapes + "UnionShape"
	ShapesFileShape      = Shapes + "FileShape"
	ShapesNilShape       = Shapes + "NilShape"
	ShapesRecursiveShape = Shapes + "RecursiveShape"
	ShapesSchemaShape    = Shapes + "SchemaShape"
	ShapesSchema         = Shapes + "schema"
	ShapesRange          = Shapes + "range"
	ShapesItems          = Shapes + "items"
	ShapesAnyOf          = Shapes + "anyOf"
	ShapesInherits       = Shapes + "inherits"
	ShapesFixPoint       = Shapes + "fixPoint"
	ShapesFormat         = Shapes + "format"
	ShapesReadOnly       = Shapes + "readOnly"
	ShapesFileType       = Shapes + "fileType"
)

// Security
const (
	SecuritySecurityRequirement        = Security + "SecurityRequirement"
	SecurityParametrizedSecurityScheme = Security + "ParametrizedSecurityScheme"
	SecuritySecurityScheme             = Security + "SecurityScheme"
	SecuritySecurity                   = Security + "security"
	SecuritySchemes                    = Security + "schemes"
	SecurityScheme                     = Security + "scheme"
	SecurityType                       = Security + "type"
	SecuritySettings                   = Security + "settings"
)

// Local returns the part of an IRI after the last '#' or '/'. Used to turn
// datatype IRIs (xsd:string) into their short names.
func Local(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	return iri
}

// Split separates an expanded IRI into its namespace and local name. The
// namespace keeps its trailing separator.
func Split(iri string) (namespace, local string) {
	i := strings.LastIndexAny(iri, "#/")
	if i < 0 || i == len(iri)-1 {
		return "", iri
	}
	return iri[:i+1], iri[i+1:]
}
