package userstate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/saikambala25/goat/internal/users"
	"github.com/saikambala25/goat/pkg/db/models"
	dbtypes "github.com/saikambala25/goat/pkg/db/types"
	pkgerrors "github.com/saikambala25/goat/pkg/errors"
	"github.com/saikambala25/goat/pkg/types"
	"github.com/saikambala25/goat/pkg/validation"
)

// CartEntryInput is one cart line as sent by the client. Selected defaults
// to true when omitted.
type CartEntryInput struct {
	LivestockID string `json:"livestockId"`
	Selected    *bool  `json:"selected"`
}

// WishlistRef accepts either a bare id string or an object carrying
// livestockId, so a client can send back what GET returned.
type WishlistRef struct {
	LivestockID string
}

func (w *WishlistRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &w.LivestockID)
	}
	var obj struct {
		LivestockID string `json:"livestockId"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	w.LivestockID = obj.LivestockID
	return nil
}

// StateUpdate is a partial replacement of the saved state. A nil field means
// the key was absent or not an array and the stored value stays as is.
type StateUpdate struct {
	Cart      *[]CartEntryInput
	Wishlist  *[]WishlistRef
	Addresses *[]types.Address
}

// UnmarshalJSON applies only array-valued cart, wishlist and addresses keys.
// Other keys and non-array values are ignored.
func (u *StateUpdate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "state must be a JSON object")
	}

	*u = StateUpdate{}
	if msg, ok := arrayValue(raw, "cart"); ok {
		entries := []CartEntryInput{}
		if err := json.Unmarshal(msg, &entries); err != nil {
			return invalidShape("cart", err)
		}
		u.Cart = &entries
	}
	if msg, ok := arrayValue(raw, "wishlist"); ok {
		refs := []WishlistRef{}
		if err := json.Unmarshal(msg, &refs); err != nil {
			return invalidShape("wishlist", err)
		}
		u.Wishlist = &refs
	}
	if msg, ok := arrayValue(raw, "addresses"); ok {
		addresses := []types.Address{}
		if err := json.Unmarshal(msg, &addresses); err != nil {
			return invalidShape("addresses", err)
		}
		u.Addresses = &addresses
	}
	return nil
}

func arrayValue(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	msg, ok := raw[key]
	if !ok {
		return nil, false
	}
	trimmed := bytes.TrimSpace(msg)
	return trimmed, len(trimmed) > 0 && trimmed[0] == '['
}

func invalidShape(field string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("%s contains an invalid entry", field)).
		WithDetails(map[string]string{field: "contains an invalid entry"})
}

func (u StateUpdate) Validate() error {
	_, err := u.patch()
	return err
}

// patch validates every entry and returns the deduplicated columns to write.
func (u StateUpdate) patch() (users.StatePatch, error) {
	var res validation.Result
	var patch users.StatePatch

	if u.Cart != nil {
		cart := models.CartEntries{}
		index := map[uuid.UUID]int{}
		for i, in := range *u.Cart {
			id, ok := res.UUID(fmt.Sprintf("cart[%d].livestockId", i), in.LivestockID)
			if !ok {
				continue
			}
			selected := true
			if in.Selected != nil {
				selected = *in.Selected
			}
			if pos, seen := index[id]; seen {
				cart[pos].Selected = selected
				continue
			}
			index[id] = len(cart)
			cart = append(cart, models.CartEntry{LivestockID: id, Selected: selected})
		}
		patch.Cart = &cart
	}

	if u.Wishlist != nil {
		wishlist := dbtypes.UUIDArray{}
		for i, ref := range *u.Wishlist {
			if id, ok := res.UUID(fmt.Sprintf("wishlist[%d]", i), ref.LivestockID); ok {
				wishlist = append(wishlist, id)
			}
		}
		wishlist = wishlist.Dedup()
		patch.Wishlist = &wishlist
	}

	if u.Addresses != nil {
		addresses := make([]types.Address, 0, len(*u.Addresses))
		for i, addr := range *u.Addresses {
			res.Nested(fmt.Sprintf("addresses[%d]", i), addr.Validate())
			addresses = append(addresses, addr.Trimmed())
		}
		patch.Addresses = &addresses
	}

	if err := res.Err(); err != nil {
		return users.StatePatch{}, err
	}
	return patch, nil
}
