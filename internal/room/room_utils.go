package room

import (
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/internal/hub/types"
	"ctchen222/Block-Battle/internal/player"
	"slices"
	"time"
)

// AddPlayer adds a player to the room. A player with the same session id
// replaces the earlier entry, which is how reconnects resume their seat; the
// replaced player's connection is closed so only one socket speaks for a session.
func (r *Room) AddPlayer(p *player.Player) {
	r.mu.Lock()
	var replaced *player.Player
	for i, existing := range r.Players {
		if existing.SessionID == p.SessionID {
			replaced = existing
			r.Players[i] = p
			break
		}
	}
	if replaced == nil {
		r.Players = append(r.Players, p)
	}
	r.mu.Unlock()

	if replaced != nil && replaced != p && replaced.Conn != nil {
		replaced.Conn.Close()
	}
}

// RemovePlayer removes p and reports how many players remain. A player whose
// seat was taken over by a reconnect is not seated and removes nothing.
func (r *Room) RemovePlayer(p *player.Player) (removed bool, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	before := len(r.Players)
	r.Players = slices.DeleteFunc(r.Players, func(existing *player.Player) bool {
		return existing == p
	})
	return len(r.Players) != before, len(r.Players)
}

// Player returns the player with the given session id.
func (r *Room) Player(id game.SessionID) (*player.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.Players {
		if p.SessionID == id {
			return p, true
		}
	}
	return nil, false
}

// IncomingMessages returns the channel feeding the room's run loop.
func (r *Room) IncomingMessages() chan<- *types.PlayerMessage {
	return r.incoming
}

func (r *Room) connectedPlayers() []*player.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	connected := make([]*player.Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Status == player.StatusConnected {
			connected = append(connected, p)
		}
	}
	return connected
}

func (r *Room) isConnected(p *player.Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return p.Status == player.StatusConnected
}

// markDisconnected flags p as disconnected. It reports false when p no longer
// holds a seat, e.g. after a reconnect replaced it.
func (r *Room) markDisconnected(p *player.Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.Players, p) {
		return false
	}
	p.Status = player.StatusDisconnected
	p.LastSeen = time.Now()
	return true
}

// expiredPlayers returns the disconnected players whose grace period ended before now.
func (r *Room) expiredPlayers(now time.Time) []*player.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired []*player.Player
	for _, p := range r.Players {
		if p.Status == player.StatusDisconnected && now.Sub(p.LastSeen) > r.reconnectGrace {
			expired = append(expired, p)
		}
	}
	return expired
}
