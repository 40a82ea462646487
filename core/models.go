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


package core

// ApiSummary describes the encoded API of a document without its endpoints.
type ApiSummary struct {
	ID             string             `json:"id"`
	Types          []string           `json:"types,omitempty"`
	Name           string             `json:"name,omitempty"`
	Description    string             `json:"description,omitempty"`
	Version        string             `json:"version,omitempty"`
	Servers        []ApiServer        `json:"servers,omitempty"`
	Schemes        []string           `json:"schemes,omitempty"`
	Accepts        []string           `json:"accepts,omitempty"`
	ContentType    []string           `json:"contentType,omitempty"`
	Documentations []ApiDocumentation `json:"documentations,omitempty"`
	Tags           []ApiTag           `json:"tags,omitempty"`
	Provider       *ApiOrganization   `json:"provider,omitempty"`
	License        *ApiLicense        `json:"license,omitempty"`
	TermsOfService string             `json:"termsOfService,omitempty"`
}

type ApiServer struct {
	ID          string         `json:"id"`
	URL         string         `json:"url"`
	Description string         `json:"description,omitempty"`
	Variables   []ApiParameter `json:"variables,omitempty"`
}

type ApiDocumentation struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

type ApiTag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ApiOrganization struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

type ApiLicense struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// ApiEndPoint is a resource path and the operations it supports.
type ApiEndPoint struct {
	ID          string                   `json:"id"`
	Path        string                   `json:"path"`
	Name        string                   `json:"name,omitempty"`
	Description string                   `json:"description,omitempty"`
	Summary     string                   `json:"summary,omitempty"`
	Operations  []ApiOperation           `json:"operations,omitempty"`
	Parameters  []ApiParameter           `json:"parameters,omitempty"`
	Servers     []ApiServer              `json:"servers,omitempty"`
	Security    []ApiSecurityRequirement `json:"security,omitempty"`
}

type ApiOperation struct {
	ID          string                   `json:"id"`
	Method      string                   `json:"method"`
	Name        string                   `json:"name,omitempty"`
	Description string                   `json:"description,omitempty"`
	Summary     string                   `json:"summary,omitempty"`
	OperationID string                   `json:"operationId,omitempty"`
	Deprecated  bool                     `json:"deprecated,omitempty"`
	Request     *ApiRequest              `json:"request,omitempty"`
	Responses   []ApiResponse            `json:"responses,omitempty"`
	Security    []ApiSecurityRequirement `json:"security,omitempty"`
	Tags        []ApiTag                 `json:"tags,omitempty"`
}

type ApiRequest struct {
	ID               string         `json:"id"`
	Description      string         `json:"description,omitempty"`
	Required         bool           `json:"required,omitempty"`
	Payloads         []ApiPayload   `json:"payloads,omitempty"`
	QueryParameters  []ApiParameter `json:"queryParameters,omitempty"`
	Headers          []ApiParameter `json:"headers,omitempty"`
	URIParameters    []ApiParameter `json:"uriParameters,omitempty"`
	CookieParameters []ApiParameter `json:"cookieParameters,omitempty"`
}

type ApiResponse struct {
	ID          string         `json:"id"`
	StatusCode  string         `json:"statusCode,omitempty"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Headers     []ApiParameter `json:"headers,omitempty"`
	Payloads    []ApiPayload   `json:"payloads,omitempty"`
}

type ApiPayload struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	MediaType string         `json:"mediaType,omitempty"`
	Schema    *ApiShapeUnion `json:"schema,omitempty"`
}

type ApiParameter struct {
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	ParamName   string         `json:"paramName,omitempty"`
	Description string         `json:"description,omitempty"`
	Binding     string         `json:"binding,omitempty"`
	Required    bool           `json:"required,omitempty"`
	Deprecated  bool           `json:"deprecated,omitempty"`
	Schema      *ApiShapeUnion `json:"schema,omitempty"`
}

// ShapeKind tells which fields of an ApiShapeUnion are populated.
type ShapeKind string

const (
	ShapeKindAny       ShapeKind = "any"
	ShapeKindScalar    ShapeKind = "scalar"
	ShapeKindNode      ShapeKind = "node"
	ShapeKindArray     ShapeKind = "array"
	ShapeKindTuple     ShapeKind = "tuple"
	ShapeKindUnion     ShapeKind = "union"
	ShapeKindFile      ShapeKind = "file"
	ShapeKindNil       ShapeKind = "nil"
	ShapeKindSchema    ShapeKind = "schema"
	ShapeKindRecursive ShapeKind = "recursive"
)

// ApiShapeUnion is a serialized data shape. Kind selects the populated
// fields: Properties for node shapes, Items for arrays, AnyOf for unions,
// DataType for scalars.
//
// A shape already being serialized higher up the same path is emitted with
// Kind recursive and FixPoint set to its id instead of being expanded again.
type ApiShapeUnion struct {
	ID          string             `json:"id"`
	Types       []string           `json:"types,omitempty"`
	Kind        ShapeKind          `json:"kind"`
	Name        string             `json:"name,omitempty"`
	DisplayName string             `json:"displayName,omitempty"`
	Description string             `json:"description,omitempty"`
	DataType    string             `json:"dataType,omitempty"`
	Format      string             `json:"format,omitempty"`
	Pattern     string             `json:"pattern,omitempty"`
	MinLength   *int               `json:"minLength,omitempty"`
	MaxLength   *int               `json:"maxLength,omitempty"`
	ReadOnly    bool               `json:"readOnly,omitempty"`
	Deprecated  bool               `json:"deprecated,omitempty"`
	Closed      bool               `json:"closed,omitempty"`
	Values      []string           `json:"values,omitempty"`
	Properties  []ApiPropertyShape `json:"properties,omitempty"`
	Items       *ApiShapeUnion     `json:"items,omitempty"`
	Tuple       []ApiShapeUnion    `json:"tuple,omitempty"`
	AnyOf       []ApiShapeUnion    `json:"anyOf,omitempty"`
	Inherits    []ApiShapeUnion    `json:"inherits,omitempty"`
	And         []ApiShapeUnion    `json:"and,omitempty"`
	Or          []ApiShapeUnion    `json:"or,omitempty"`
	Xone        []ApiShapeUnion    `json:"xone,omitempty"`
	FileTypes   []string           `json:"fileTypes,omitempty"`
	FixPoint    string             `json:"fixPoint,omitempty"`
}

type ApiPropertyShape struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	Path     string         `json:"path,omitempty"`
	MinCount int            `json:"minCount"`
	MaxCount *int           `json:"maxCount,omitempty"`
	Range    *ApiShapeUnion `json:"range,omitempty"`
}

// Required reports whether the property must be present (minCount > 0).
func (p ApiPropertyShape) Required() bool {
	return p.MinCount > 0
}

type ApiSecurityRequirement struct {
	ID      string                          `json:"id"`
	Name    string                          `json:"name,omitempty"`
	Schemes []ApiParametrizedSecurityScheme `json:"schemes,omitempty"`
}

type ApiParametrizedSecurityScheme struct {
	ID     string             `json:"id"`
	Name   string             `json:"name,omitempty"`
	Scheme *ApiSecurityScheme `json:"scheme,omitempty"`
}

type ApiSecurityScheme struct {
	ID              string         `json:"id"`
	Name            string         `json:"name,omitempty"`
	DisplayName     string         `json:"displayName,omitempty"`
	Description     string         `json:"description,omitempty"`
	Type            string         `json:"type,omitempty"`
	Headers         []ApiParameter `json:"headers,omitempty"`
	QueryParameters []ApiParameter `json:"queryParameters,omitempty"`
}

// Navigation list items. These carry just enough to render a tree.

type ApiEndPointListItem struct {
	ID         string                 `json:"id"`
	Path       string                 `json:"path"`
	Name       string                 `json:"name,omitempty"`
	Operations []ApiOperationListItem `json:"operations,omitempty"`
}

type ApiOperationListItem struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Name   string `json:"name,omitempty"`
}

type ApiNodeShapeListItem struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

type ApiSecuritySchemeListItem struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Type        string `json:"type,omitempty"`
}
