package dto

import "github.com/wmslabs/composicao-api/internal/domain/packing"

// CompositionLine uma linha (produto, quantidade, embalagem) da requisição.
// PackagingTypeID vazio resolve para a unidade base do produto.
type CompositionLine struct {
	ProductID       string `json:"productId" validate:"required"`
	PackagingTypeID string `json:"packagingTypeId"`
	Quantity        int64  `json:"quantity" validate:"required,gt=0"`
}

// CompositionRequest requisição efêmera de cálculo/validação.
type CompositionRequest struct {
	Lines       []CompositionLine    `json:"products" validate:"required,min=1,dive"`
	PalletID    string               `json:"palletId" validate:"required"`
	Constraints *packing.Constraints `json:"constraints,omitempty"`
}

// SaveCompositionRequest criação de composição persistida (em draft).
type SaveCompositionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	CompositionRequest
}

// UpdateStatusRequest transição direta de status, com versão otimista.
// Version é a versão lida pelo cliente; transições com versão defasada
// recebem conflito.
type UpdateStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Version int    `json:"version" validate:"min=0"`
}

// ValidationMetrics agregados ecoados na validação.
type ValidationMetrics struct {
	TotalWeightKg  float64 `json:"totalWeight"`
	TotalVolumeCm3 float64 `json:"totalVolume"`
	TotalHeightCm  float64 `json:"totalHeight"`
	Efficiency     float64 `json:"efficiency"`
}

// ValidationResult saída de validate(request).
type ValidationResult struct {
	IsValid    bool              `json:"isValid"`
	Violations []string          `json:"violations"`
	Warnings   []string          `json:"warnings"`
	Metrics    ValidationMetrics `json:"metrics"`
}

// AssembleRequest corpo da montagem.
type AssembleRequest struct {
	TargetUcpID string `json:"targetUcpId" validate:"required"`
}

// DisassemblyTarget destino parcial de uma desmontagem.
type DisassemblyTarget struct {
	ProductID   string `json:"productId" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	TargetUcpID string `json:"targetUcpId" validate:"required"`
}

// DisassembleRequest corpo da desmontagem.
type DisassembleRequest struct {
	Targets []DisassemblyTarget `json:"targets" validate:"required,min=1,dive"`
}

// MovementSummary um movimento de estoque efetivado pelo ledger.
type MovementSummary struct {
	ProductID       string `json:"productId"`
	PackagingTypeID string `json:"packagingTypeId"`
	SourceUcpID     string `json:"sourceUcpId"`
	TargetUcpID     string `json:"targetUcpId"`
	Quantity        string `json:"quantity"`
}

// AssemblyOutcome resultado da montagem.
type AssemblyOutcome struct {
	CompositionID string            `json:"compositionId"`
	Status        string            `json:"status"`
	TargetUcpID   string            `json:"targetUcpId"`
	Movements     []MovementSummary `json:"movements"`
}

// DisassemblyOutcome resultado da desmontagem.
type DisassemblyOutcome struct {
	CompositionID string            `json:"compositionId"`
	Status        string            `json:"status"`
	Movements     []MovementSummary `json:"movements"`
}

// CompositionListFilter filtros aceitos pela listagem.
type CompositionListFilter struct {
	Status   string `query:"status"`
	PalletID string `query:"palletId"`
	Search   string `query:"search"`
	PageRequest
}
