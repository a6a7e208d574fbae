package services

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"vsd/internal/models"
	"vsd/internal/providers"
	"vsd/internal/storage"
)

const (
	keyUsersList   = "users_list"
	keyAdminUserID = "admin_user_id"
	userKeyPrefix  = "user_"
)

type AuthServiceInterface interface {
	// Bootstrap resolves the device to a session identity once per session
	// initialization: returning user, newly auto-created user, or
	// unauthenticated.
	Bootstrap() *models.Session
	// Login overwrites the device-keyed account record and activates it.
	// Profile edits are modeled as a full re-login with updated fields.
	Login(account models.UserAccount) *models.Session
	// Logout clears the device-keyed account and the active session. The
	// device id, fingerprint and registry entry survive, so the next
	// bootstrap finds a known device with no account and stays
	// unauthenticated.
	Logout()
	Current() *models.Session
	// IsAdmin is identity-based, not role-based: an account is privileged
	// iff its id equals the single stored admin pointer.
	IsAdmin(accountID string) bool
	Registry() []models.UserRegistryEntry
}

type AuthService struct {
	store    storage.KVStore
	devices  DeviceServiceInterface
	registry *Collection[models.UserRegistryEntry]
	logger   providers.Logger
	now      func() time.Time

	mu      sync.Mutex
	session *models.Session
}

func NewAuthService(store storage.KVStore, devices DeviceServiceInterface, logger providers.Logger) AuthServiceInterface {
	return &AuthService{
		store:   store,
		devices: devices,
		registry: NewCollection(store, keyUsersList,
			func(e models.UserRegistryEntry) string { return e.ID }, logger),
		logger: logger,
		now:    time.Now,
	}
}

func userKey(deviceID string) string {
	return userKeyPrefix + deviceID
}

func (as *AuthService) Bootstrap() *models.Session {
	as.mu.Lock()
	defer as.mu.Unlock()

	// Sample the new-device flag before anything touches the fingerprint
	// record: reading the fingerprint creates it.
	wasNew := as.devices.IsNewDevice()
	deviceID := as.devices.GetOrCreateDeviceID()

	if raw, ok := as.store.Get(userKey(deviceID)); ok {
		var account models.UserAccount
		if err := json.Unmarshal([]byte(raw), &account); err != nil {
			as.logger.Warnf(providers.TypeApp, "Stored account for device %s is malformed, ignoring: %s", deviceID, err)
		} else {
			account.LastLogin = as.now().UnixMilli()
			as.persistAccount(account)
			as.session = newSession(&account)
			return as.session
		}
	}

	if wasNew {
		account := as.createAccountFromDevice(deviceID)
		as.session = newSession(&account)
		return as.session
	}

	// Known device, no bound account: stay unauthenticated.
	as.session = newSession(nil)
	return as.session
}

func (as *AuthService) createAccountFromDevice(deviceID string) models.UserAccount {
	// Creating the fingerprint record here marks the device as seen, so a
	// later account-less bootstrap does not auto-create again.
	as.devices.GetFingerprint()

	now := as.now()
	// The time token alone is not unique: two devices bootstrapping in the
	// same millisecond would mint the same id and both pass the IsAdmin
	// equality check. The random suffix keeps ids distinct, like device and
	// video ids.
	token := timeToken(now) + "-" + randToken(6)
	account := models.UserAccount{
		ID:        "uid_" + token,
		DeviceID:  deviceID,
		Username:  "user_" + token,
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/80?img=%d", rand.IntN(70)),
		CreatedAt: now.UnixMilli(),
		LastLogin: now.UnixMilli(),
	}

	// First-user admin assignment is a compare-and-set on the admin pointer,
	// not a registry length check, so two racing bootstraps cannot both win.
	isFirstUser := as.store.SetIfAbsent(keyAdminUserID, account.ID)

	as.registry.Create(models.UserRegistryEntry{
		ID:        account.ID,
		DeviceID:  deviceID,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
		IsAdmin:   isFirstUser,
	})

	as.persistAccount(account)
	return account
}

func (as *AuthService) Login(account models.UserAccount) *models.Session {
	as.mu.Lock()
	defer as.mu.Unlock()

	account.DeviceID = as.devices.GetOrCreateDeviceID()
	as.persistAccount(account)
	as.session = newSession(&account)
	return as.session
}

func (as *AuthService) Logout() {
	as.mu.Lock()
	defer as.mu.Unlock()

	deviceID := as.devices.GetOrCreateDeviceID()
	as.store.Remove(userKey(deviceID))
	as.session = nil
}

func (as *AuthService) Current() *models.Session {
	as.mu.Lock()
	defer as.mu.Unlock()
	return as.session
}

func (as *AuthService) IsAdmin(accountID string) bool {
	adminID, ok := as.store.Get(keyAdminUserID)
	return ok && accountID != "" && adminID == accountID
}

func (as *AuthService) Registry() []models.UserRegistryEntry {
	return as.registry.List()
}

func (as *AuthService) persistAccount(account models.UserAccount) {
	data, err := json.Marshal(account)
	if err != nil {
		as.logger.Errorf(providers.TypeApp, "Failed to serialize account %s: %s", account.ID, err)
		return
	}
	as.store.Set(userKey(account.DeviceID), string(data))
}

func newSession(account *models.UserAccount) *models.Session {
	return &models.Session{
		ID:            uuid.NewString(),
		Authenticated: account != nil,
		User:          account,
	}
}
