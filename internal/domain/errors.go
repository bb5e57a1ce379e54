package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas). As mensagens de negócio carregam
// o limite violado por extenso; os handlers mapeiam os sentinelas para HTTP.
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("não autorizado")
	ErrForbidden    = errors.New("acesso negado")
	ErrConflict     = errors.New("conflito com o estado atual")
	ErrInactive     = errors.New("recurso inativo")
	ErrBusinessRule = errors.New("regra de negócio violada")
	ErrEmailExists  = errors.New("o e-mail já está cadastrado")

	// ErrInsufficientStock é uma especialização de ErrBusinessRule:
	// errors.Is(err, ErrBusinessRule) também é verdadeiro para ele.
	ErrInsufficientStock = fmt.Errorf("%w: estoque insuficiente", ErrBusinessRule)
)
