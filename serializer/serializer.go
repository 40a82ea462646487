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


package serializer

import (
	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/graph"
	"github.com/subratsf/amfstore/vocabulary"
)

// Serializer converts nodes of one graph document into core domain objects.
// It is safe for concurrent use; it holds no state besides the document.
type Serializer struct {
	doc *graph.Document
}

// New returns a Serializer bound to doc.
func New(doc *graph.Document) *Serializer {
	return &Serializer{doc: doc}
}

func (s *Serializer) str(n graph.Node, iri string) string {
	return s.doc.String(n, iri)
}

func (s *Serializer) flag(n graph.Node, iri string) bool {
	b, _ := s.doc.Bool(n, iri)
	return b
}

func (s *Serializer) missing(n graph.Node, iri string) error {
	return core.NewMalformedGraphError(s.doc.Key(iri), graph.ID(n))
}

// Summary serializes the encoded API node without its endpoints.
func (s *Serializer) Summary(api graph.Node) (*core.ApiSummary, error) {
	if api == nil {
		return nil, s.missing(s.doc.Root(), vocabulary.DocEncodes)
	}
	summary := &core.ApiSummary{
		ID:             graph.ID(api),
		Types:          s.doc.Types(api),
		Name:           s.str(api, vocabulary.CoreName),
		Description:    s.str(api, vocabulary.CoreDescription),
		Version:        s.str(api, vocabulary.CoreVersion),
		Schemes:        s.doc.Strings(api, vocabulary.APIScheme),
		Accepts:        s.doc.Strings(api, vocabulary.APIAccepts),
		ContentType:    s.doc.Strings(api, vocabulary.APIContentType),
		TermsOfService: s.str(api, vocabulary.CoreTermsOfService),
	}

	for _, n := range s.doc.Nodes(api, vocabulary.APIServerKey) {
		summary.Servers = append(summary.Servers, s.server(n))
	}
	for _, n := range s.doc.Nodes(api, vocabulary.CoreDocumentation) {
		summary.Documentations = append(summary.Documentations, *s.Documentation(n))
	}
	for _, n := range s.doc.Nodes(api, vocabulary.APITagKey) {
		summary.Tags = append(summary.Tags, s.tag(n))
	}
	if n, ok := s.doc.Node(api, vocabulary.CoreProvider); ok {
		summary.Provider = &core.ApiOrganization{
			ID:    graph.ID(n),
			Name:  s.str(n, vocabulary.CoreName),
			Email: s.str(n, vocabulary.CoreEmail),
			URL:   s.str(n, vocabulary.CoreURL),
		}
	}
	if n, ok := s.doc.Node(api, vocabulary.CoreLicense); ok {
		summary.License = &core.ApiLicense{
			ID:   graph.ID(n),
			Name: s.str(n, vocabulary.CoreName),
			URL:  s.str(n, vocabulary.CoreURL),
		}
	}
	return summary, nil
}

// EndPoint serializes an endpoint with its operations.
func (s *Serializer) EndPoint(n graph.Node) (*core.ApiEndPoint, error) {
	if !s.doc.Has(n, vocabulary.APIPath) {
		return nil, s.missing(n, vocabulary.APIPath)
	}
	endpoint := &core.ApiEndPoint{
		ID:          graph.ID(n),
		Path:        s.str(n, vocabulary.APIPath),
		Name:        s.str(n, vocabulary.CoreName),
		Description: s.str(n, vocabulary.CoreDescription),
		Summary:     s.str(n, vocabulary.CoreSummary),
		Parameters:  s.parameters(n, vocabulary.APIParameterKey),
	}
	for _, op := range s.doc.Nodes(n, vocabulary.APISupportedOperation) {
		operation, err := s.Operation(op)
		if err != nil {
			return nil, err
		}
		endpoint.Operations = append(endpoint.Operations, *operation)
	}
	for _, srv := range s.doc.Nodes(n, vocabulary.APIServerKey) {
		endpoint.Servers = append(endpoint.Servers, s.server(srv))
	}
	security, err := s.securityList(n)
	if err != nil {
		return nil, err
	}
	endpoint.Security = security
	return endpoint, nil
}

// EndPointListItem serializes the navigation view of an endpoint.
func (s *Serializer) EndPointListItem(n graph.Node) (*core.ApiEndPointListItem, error) {
	if !s.doc.Has(n, vocabulary.APIPath) {
		return nil, s.missing(n, vocabulary.APIPath)
	}
	item := &core.ApiEndPointListItem{
		ID:   graph.ID(n),
		Path: s.str(n, vocabulary.APIPath),
		Name: s.str(n, vocabulary.CoreName),
	}
	for _, op := range s.doc.Nodes(n, vocabulary.APISupportedOperation) {
		if !s.doc.Has(op, vocabulary.APIMethod) {
			return nil, s.missing(op, vocabulary.APIMethod)
		}
		item.Operations = append(item.Operations, core.ApiOperationListItem{
			ID:     graph.ID(op),
			Method: s.str(op, vocabulary.APIMethod),
			Name:   s.str(op, vocabulary.CoreName),
		})
	}
	return item, nil
}

// Operation serializes an operation with its request and responses.
func (s *Serializer) Operation(n graph.Node) (*core.ApiOperation, error) {
	if !s.doc.Has(n, vocabulary.APIMethod) {
		return nil, s.missing(n, vocabulary.APIMethod)
	}
	operation := &core.ApiOperation{
		ID:          graph.ID(n),
		Method:      s.str(n, vocabulary.APIMethod),
		Name:        s.str(n, vocabulary.CoreName),
		Description: s.str(n, vocabulary.CoreDescription),
		Summary:     s.str(n, vocabulary.CoreSummary),
		OperationID: s.str(n, vocabulary.APIOperationID),
		Deprecated:  s.flag(n, vocabulary.CoreDeprecated),
	}
	if req, ok := s.doc.Node(n, vocabulary.APIExpects); ok {
		operation.Request = s.request(req)
	}
	for _, res := range s.doc.Nodes(n, vocabulary.APIReturns) {
		operation.Responses = append(operation.Responses, s.response(res))
	}
	for _, tag := range s.doc.Nodes(n, vocabulary.APITagKey) {
		operation.Tags = append(operation.Tags, s.tag(tag))
	}
	security, err := s.securityList(n)
	if err != nil {
		return nil, err
	}
	operation.Security = security
	return operation, nil
}

// Documentation serializes a creative work node.
func (s *Serializer) Documentation(n graph.Node) *core.ApiDocumentation {
	return &core.ApiDocumentation{
		ID:          graph.ID(n),
		Title:       s.str(n, vocabulary.CoreTitle),
		Description: s.str(n, vocabulary.CoreDescription),
		URL:         s.str(n, vocabulary.CoreURL),
	}
}

func (s *Serializer) request(n graph.Node) *core.ApiRequest {
	return &core.ApiRequest{
		ID:               graph.ID(n),
		Description:      s.str(n, vocabulary.CoreDescription),
		Required:         s.flag(n, vocabulary.APIRequired),
		Payloads:         s.payloads(n),
		QueryParameters:  s.parameters(n, vocabulary.APIParameterKey),
		Headers:          s.parameters(n, vocabulary.APIHeader),
		URIParameters:    s.parameters(n, vocabulary.APIURIParameter),
		CookieParameters: s.parameters(n, vocabulary.APICookieParameter),
	}
}

func (s *Serializer) response(n graph.Node) core.ApiResponse {
	return core.ApiResponse{
		ID:          graph.ID(n),
		StatusCode:  s.str(n, vocabulary.APIStatusCode),
		Name:        s.str(n, vocabulary.CoreName),
		Description: s.str(n, vocabulary.CoreDescription),
		Headers:     s.parameters(n, vocabulary.APIHeader),
		Payloads:    s.payloads(n),
	}
}

func (s *Serializer) payloads(n graph.Node) []core.ApiPayload {
	var out []core.ApiPayload
	for _, p := range s.doc.Nodes(n, vocabulary.APIPayloadKey) {
		payload := core.ApiPayload{
			ID:        graph.ID(p),
			Name:      s.str(p, vocabulary.CoreName),
			MediaType: s.str(p, vocabulary.CoreMediaType),
		}
		if schema, ok := s.doc.Node(p, vocabulary.ShapesSchema); ok {
			payload.Schema = s.shape(schema, make(map[string]bool))
		}
		out = append(out, payload)
	}
	return out
}

func (s *Serializer) parameters(n graph.Node, iri string) []core.ApiParameter {
	var out []core.ApiParameter
	for _, p := range s.doc.Nodes(n, iri) {
		out = append(out, s.parameter(p))
	}
	return out
}

func (s *Serializer) parameter(n graph.Node) core.ApiParameter {
	param := core.ApiParameter{
		ID:          graph.ID(n),
		Name:        s.str(n, vocabulary.CoreName),
		ParamName:   s.str(n, vocabulary.APIParamName),
		Description: s.str(n, vocabulary.CoreDescription),
		Binding:     s.str(n, vocabulary.APIBinding),
		Required:    s.flag(n, vocabulary.APIRequired),
		Deprecated:  s.flag(n, vocabulary.CoreDeprecated),
	}
	if schema, ok := s.doc.Node(n, vocabulary.ShapesSchema); ok {
		param.Schema = s.shape(schema, make(map[string]bool))
	}
	return param
}

func (s *Serializer) server(n graph.Node) core.ApiServer {
	url := s.str(n, vocabulary.CoreURLTemplate)
	if url == "" {
		url = s.str(n, vocabulary.CoreURL)
	}
	return core.ApiServer{
		ID:          graph.ID(n),
		URL:         url,
		Description: s.str(n, vocabulary.CoreDescription),
		Variables:   s.parameters(n, vocabulary.APIVariable),
	}
}

func (s *Serializer) tag(n graph.Node) core.ApiTag {
	return core.ApiTag{
		ID:          graph.ID(n),
		Name:        s.str(n, vocabulary.CoreName),
		Description: s.str(n, vocabulary.CoreDescription),
	}
}
