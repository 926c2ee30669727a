package world

import (
	"maps"
	"slices"
	"sync"

	"github.com/pixil98/go-olc/internal/storage"
)

// World is the live game state the content tables reach into. Iteration
// helpers work on a snapshot taken under the lock, so callbacks may call the
// mutators.
type World struct {
	mu sync.RWMutex

	rooms     map[storage.Vnum]*Room
	objects   []*Object
	vehicles  []*Vehicle
	players   map[string]*Player
	instances map[int]*Instance
	running   map[storage.Vnum]*RunningEvent

	nextInstance int
}

func New() *World {
	return &World{
		rooms:        map[storage.Vnum]*Room{},
		players:      map[string]*Player{},
		instances:    map[int]*Instance{},
		running:      map[storage.Vnum]*RunningEvent{},
		nextInstance: 1,
	}
}

func (w *World) AddRoom(r *Room) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rooms[r.Vnum] = r
}

func (w *World) Room(vnum storage.Vnum) (*Room, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	r, ok := w.rooms[vnum]
	return r, ok
}

func (w *World) AddObject(o *Object) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.objects = append(w.objects, o)
}

func (w *World) AddVehicle(v *Vehicle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.vehicles = append(w.vehicles, v)
}

// AddPlayer registers a logged-in player.
func (w *World) AddPlayer(p *Player) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.players[p.Name]; exists {
		return ErrPlayerExists
	}
	w.players[p.Name] = p
	return nil
}

func (w *World) RemovePlayer(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.players[name]; !exists {
		return ErrPlayerNotFound
	}
	delete(w.players, name)
	return nil
}

// Player returns the named player or nil.
func (w *World) Player(name string) *Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.players[name]
}

// StartInstance creates a live instance of adventure adv and returns its id.
func (w *World) StartInstance(adv storage.Vnum) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextInstance
	w.nextInstance++
	w.instances[id] = &Instance{ID: id, Adventure: adv}
	return id
}

// InstanceCount returns how many instances of adv are live.
func (w *World) InstanceCount(adv storage.Vnum) int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	n := 0
	for _, inst := range w.instances {
		if inst.Adventure == adv {
			n++
		}
	}
	return n
}

// RemoveInstancesOf shuts down every instance of adventure adv, along with
// the rooms that belong to them.
func (w *World) RemoveInstancesOf(adv storage.Vnum) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	removed := 0
	for id, inst := range w.instances {
		if inst.Adventure != adv {
			continue
		}
		delete(w.instances, id)
		maps.DeleteFunc(w.rooms, func(_ storage.Vnum, r *Room) bool {
			return r.Instance == id
		})
		removed++
	}
	return removed
}

func (w *World) StartEvent(vnum storage.Vnum, version int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running[vnum] = &RunningEvent{Event: vnum, Version: version}
}

func (w *World) EventRunning(vnum storage.Vnum) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.running[vnum]
	return ok
}

// CancelEvent stops event vnum without paying rewards.
func (w *World) CancelEvent(vnum storage.Vnum) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.running[vnum]; !ok {
		return false
	}
	delete(w.running, vnum)
	return true
}

// ForEachRoom calls fn for every room in vnum order.
func (w *World) ForEachRoom(fn func(*Room)) {
	w.mu.RLock()
	vnums := slices.Sorted(maps.Keys(w.rooms))
	rooms := make([]*Room, 0, len(vnums))
	for _, v := range vnums {
		rooms = append(rooms, w.rooms[v])
	}
	w.mu.RUnlock()

	for _, r := range rooms {
		fn(r)
	}
}

func (w *World) ForEachObject(fn func(*Object)) {
	w.mu.RLock()
	objs := slices.Clone(w.objects)
	w.mu.RUnlock()

	for _, o := range objs {
		fn(o)
	}
}

func (w *World) ForEachVehicle(fn func(*Vehicle)) {
	w.mu.RLock()
	vehs := slices.Clone(w.vehicles)
	w.mu.RUnlock()

	for _, v := range vehs {
		fn(v)
	}
}

// ForEachPlayer calls fn for every player in name order.
func (w *World) ForEachPlayer(fn func(*Player)) {
	w.mu.RLock()
	names := slices.Sorted(maps.Keys(w.players))
	players := make([]*Player, 0, len(names))
	for _, n := range names {
		players = append(players, w.players[n])
	}
	w.mu.RUnlock()

	for _, p := range players {
		fn(p)
	}
}

// ResetBuilding turns a building's map room back into open terrain. Its
// interior rooms are removed.
func (w *World) ResetBuilding(r *Room) {
	w.mu.Lock()
	defer w.mu.Unlock()

	r.Building = storage.Nothing
	r.Construction = nil
	if r.OriginalSector != storage.Nothing {
		r.Sector = r.OriginalSector
	}

	maps.DeleteFunc(w.rooms, func(_ storage.Vnum, other *Room) bool {
		return other.Interior && other.HomeRoom == r.Vnum
	})
}

// RemoveRoom deletes an interior room. Map rooms stay.
func (w *World) RemoveRoom(r *Room) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !r.Interior {
		return false
	}
	delete(w.rooms, r.Vnum)
	return true
}

func (w *World) SetLiquid(o *Object, liquid storage.Vnum) {
	w.mu.Lock()
	defer w.mu.Unlock()
	o.Liquid = liquid
}

func (w *World) SetSector(r *Room, sector storage.Vnum) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r.Sector = sector
}

func (w *World) SetOriginalSector(r *Room, sector storage.Vnum) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r.OriginalSector = sector
}

// ClearCrop removes a room's crop and gives it sector instead.
func (w *World) ClearCrop(r *Room, sector storage.Vnum) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r.Crop = storage.Nothing
	r.Sector = sector
}

func (w *World) SetObjectCrop(o *Object, crop storage.Vnum) {
	w.mu.Lock()
	defer w.mu.Unlock()
	o.Crop = crop
}

func (w *World) SetObjectBook(o *Object, book storage.Vnum) {
	w.mu.Lock()
	defer w.mu.Unlock()
	o.Book = book
}

func (w *World) SetVehicleInterior(v *Vehicle, building storage.Vnum) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v.Interior = building
}

// StripConstruction drops every generic-backed resource naming vnum from
// what r still needs. When nothing is left the construction completes.
func (w *World) StripConstruction(r *Room, vnum storage.Vnum) (stripped, completed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if r.Construction == nil || !r.Construction.Remaining.RemoveGeneric(vnum) {
		return false, false
	}
	if r.Construction.Done() {
		r.Construction = nil
		return true, true
	}
	return true, false
}

// CompleteConstruction finishes whatever is being built in r.
func (w *World) CompleteConstruction(r *Room) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r.Construction = nil
}

// Stats counts the live collections.
type Stats struct {
	Rooms     int
	Objects   int
	Vehicles  int
	Players   int
	Instances int
}

func (w *World) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return Stats{
		Rooms:     len(w.rooms),
		Objects:   len(w.objects),
		Vehicles:  len(w.vehicles),
		Players:   len(w.players),
		Instances: len(w.instances),
	}
}
