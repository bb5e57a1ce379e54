// Package memory implementa as portas de persistência sobre mapas em memória.
// Útil para testes e para subir a API sem banco. As transações são
// serializadas por um mutex e desfeitas por snapshot: os repositórios nunca
// mutam valores armazenados, sempre substituem por cópias, então restaurar os
// mapas basta para o rollback.
package memory

import (
	"sync"

	"github.com/wmslabs/composicao-api/internal/domain/entity"
)

// Store guarda todo o estado em memória. Seguro para uso concorrente.
type Store struct {
	mu   sync.RWMutex // protege os mapas
	txMu sync.Mutex   // serializa transações do TxRunner

	products     map[string]*entity.Product
	packagings   map[string]*entity.PackagingType
	pallets      map[string]*entity.Pallet
	compositions map[string]*entity.Composition
	inventory    map[string]*entity.InventoryRecord
	movements    []entity.StockMovement
	reports      []entity.CompositionReport
	users        map[string]*entity.User
}

// NewStore cria um Store vazio.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]*entity.Product),
		packagings:   make(map[string]*entity.PackagingType),
		pallets:      make(map[string]*entity.Pallet),
		compositions: make(map[string]*entity.Composition),
		inventory:    make(map[string]*entity.InventoryRecord),
		users:        make(map[string]*entity.User),
	}
}

// PutProduct insere ou substitui um produto (carga de dados mestres).
func (s *Store) PutProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

// PutPackaging insere ou substitui uma embalagem.
func (s *Store) PutPackaging(pt *entity.PackagingType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *pt
	s.packagings[pt.ID] = &cp
}

// PutPallet insere ou substitui um palete.
func (s *Store) PutPallet(p *entity.Pallet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.pallets[p.ID] = &cp
}

// PutInventory insere ou substitui um registro de saldo.
func (s *Store) PutInventory(rec *entity.InventoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.inventory[rec.ID] = &cp
}

// PutUser insere ou substitui um usuário.
func (s *Store) PutUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
}

// snapshot captura o estado mutável por transações. Como os repositórios
// substituem valores em vez de mutá-los, copiar os mapas é suficiente.
type snapshot struct {
	compositions map[string]*entity.Composition
	inventory    map[string]*entity.InventoryRecord
	movements    []entity.StockMovement
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		compositions: make(map[string]*entity.Composition, len(s.compositions)),
		inventory:    make(map[string]*entity.InventoryRecord, len(s.inventory)),
		movements:    make([]entity.StockMovement, len(s.movements)),
	}
	for k, v := range s.compositions {
		snap.compositions[k] = v
	}
	for k, v := range s.inventory {
		snap.inventory[k] = v
	}
	copy(snap.movements, s.movements)
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compositions = snap.compositions
	s.inventory = snap.inventory
	s.movements = snap.movements
}
