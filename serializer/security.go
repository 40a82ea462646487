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

// SecurityRequirement serializes a requirement with its parametrized schemes.
func (s *Serializer) SecurityRequirement(n graph.Node) (*core.ApiSecurityRequirement, error) {
	if n == nil {
		return nil, core.ErrInvalidArgument
	}
	req := &core.ApiSecurityRequirement{
		ID:   graph.ID(n),
		Name: s.str(n, vocabulary.CoreName),
	}
	for _, p := range s.doc.Nodes(n, vocabulary.SecuritySchemes) {
		ps := core.ApiParametrizedSecurityScheme{
			ID:   graph.ID(p),
			Name: s.str(p, vocabulary.CoreName),
		}
		if scheme, ok := s.doc.Node(p, vocabulary.SecurityScheme); ok {
			ps.Scheme = s.SecurityScheme(scheme)
		}
		req.Schemes = append(req.Schemes, ps)
	}
	return req, nil
}

// SecurityScheme serializes a declared security scheme.
func (s *Serializer) SecurityScheme(n graph.Node) *core.ApiSecurityScheme {
	return &core.ApiSecurityScheme{
		ID:              graph.ID(n),
		Name:            s.str(n, vocabulary.CoreName),
		DisplayName:     s.str(n, vocabulary.CoreDisplayName),
		Description:     s.str(n, vocabulary.CoreDescription),
		Type:            s.str(n, vocabulary.SecurityType),
		Headers:         s.parameters(n, vocabulary.APIHeader),
		QueryParameters: s.parameters(n, vocabulary.APIParameterKey),
	}
}

func (s *Serializer) SecuritySchemeListItem(n graph.Node) *core.ApiSecuritySchemeListItem {
	return &core.ApiSecuritySchemeListItem{
		ID:          graph.ID(n),
		Name:        s.str(n, vocabulary.CoreName),
		DisplayName: s.str(n, vocabulary.CoreDisplayName),
		Type:        s.str(n, vocabulary.SecurityType),
	}
}

func (s *Serializer) securityList(n graph.Node) ([]core.ApiSecurityRequirement, error) {
	var out []core.ApiSecurityRequirement
	for _, sec := range s.doc.Nodes(n, vocabulary.SecuritySecurity) {
		req, err := s.SecurityRequirement(sec)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, nil
}
