package sandbox

import (
	"cmp"
	"encoding/base64"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/printmg/internal/backend"
)

const (
	resetTTL    = time.Hour
	recentLimit = 5
)

type account struct {
	user backend.User
	hash []byte
}

type orderRecord struct {
	order    backend.Order
	ownerID  int
	fileKeys []string
}

type notificationRecord struct {
	id          int
	message     string
	senderID    int
	recipientID int
	read        bool
	createdAt   time.Time
	deletedAt   *time.Time
}

type resetToken struct {
	userID  int
	expires time.Time
}

// state is the in-memory database of the sandbox. Every method takes the
// lock itself; helpers named without a verb expect the caller to hold it.
type state struct {
	mu   sync.RWMutex
	now  func() time.Time
	cost int

	users         map[int]*account
	emails        map[string]int
	products      map[int]backend.Product
	orders        map[int]*orderRecord
	notifications map[int]*notificationRecord
	resets        map[string]resetToken

	nextUser         int
	nextProduct      int
	nextOrder        int
	nextFile         int
	nextNotification int
}

func newState(now func() time.Time, cost int) *state {
	return &state{
		now:           now,
		cost:          cost,
		users:         make(map[int]*account),
		emails:        make(map[string]int),
		products:      make(map[int]backend.Product),
		orders:        make(map[int]*orderRecord),
		notifications: make(map[int]*notificationRecord),
		resets:        make(map[string]resetToken),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Users

func (s *state) addUser(u backend.User, password string) (backend.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return backend.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(u.Email)
	if _, ok := s.emails[key]; ok {
		return backend.User{}, ErrEmailTaken
	}

	s.nextUser++
	u.ID = s.nextUser
	u.Email = strings.TrimSpace(u.Email)
	if u.Role == "" {
		u.Role = backend.RoleUser
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = s.now()
	}

	s.users[u.ID] = &account{user: u, hash: hash}
	s.emails[key] = u.ID
	return u, nil
}

func (s *state) authenticate(email, password string) (backend.User, error) {
	s.mu.RLock()
	id, ok := s.emails[emailKey(email)]
	var (
		user backend.User
		hash []byte
	)
	if ok {
		user, hash = s.users[id].user, s.users[id].hash
	}
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return backend.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *state) userByEmail(email string) (backend.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[emailKey(email)]
	if !ok {
		return backend.User{}, false
	}
	return s.users[id].user, true
}

func (s *state) setPassword(id int, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	acc.hash = hash
	return nil
}

// listUsers returns every account, most recently joined first.
func (s *state) listUsers() []backend.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userList()
}

func (s *state) userList() []backend.User {
	users := make([]backend.User, 0, len(s.users))
	for _, acc := range s.users {
		users = append(users, acc.user)
	}
	slices.SortFunc(users, func(a, b backend.User) int {
		if c := b.JoinedAt.Compare(a.JoinedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return users
}

func (s *state) adminIDs() []int {
	var ids []int
	for id, acc := range s.users {
		if acc.user.Role == backend.RoleAdmin {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Password resets

func (s *state) issueReset(email string) (uid, token string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[emailKey(email)]
	if !ok {
		return "", "", ErrUnknownEmail
	}

	uid = base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(id)))
	token = uuid.NewString()
	s.resets[uid+"/"+token] = resetToken{userID: id, expires: s.now().Add(resetTTL)}
	return uid, token, nil
}

// consumeReset invalidates the link and returns the account it was issued for.
func (s *state) consumeReset(uid, token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := uid + "/" + token
	rt, ok := s.resets[key]
	delete(s.resets, key)
	if !ok || s.now().After(rt.expires) {
		return 0, ErrInvalidResetLink
	}
	return rt.userID, nil
}

// Products

func (s *state) listProducts() []backend.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]backend.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	slices.SortFunc(products, func(a, b backend.Product) int { return cmp.Compare(a.ID, b.ID) })
	return products
}

func (s *state) product(id int) (backend.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return backend.Product{}, ErrNotFound
	}
	return p, nil
}

func (s *state) createProduct(p backend.Product) backend.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProduct++
	p.ID = s.nextProduct
	s.products[p.ID] = p
	return p
}

func (s *state) updateProduct(id int, p backend.Product) (backend.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return backend.Product{}, ErrNotFound
	}
	p.ID = id
	s.products[id] = p
	return p, nil
}

func (s *state) deleteProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// Orders

func (s *state) createOrder(ownerID int, o backend.Order, fileKeys []string) backend.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextOrder++
	o.ID = s.nextOrder
	o.CreatedAt = s.now()
	for i := range o.Files {
		s.nextFile++
		o.Files[i].ID = s.nextFile
		o.Files[i].UploadedAt = o.CreatedAt
	}
	if acc, ok := s.users[ownerID]; ok {
		o.Customer = strings.TrimSpace(acc.user.FirstName + " " + acc.user.LastName)
	}

	s.orders[o.ID] = &orderRecord{order: o, ownerID: ownerID, fileKeys: fileKeys}
	return cloneOrder(o)
}

// orderList returns copies of the orders owned by userID, or of every order
// when userID is zero, newest first.
func (s *state) orderList(userID int, deleted bool) []backend.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []backend.Order
	for _, r := range s.sortedOrders() {
		if userID != 0 && r.ownerID != userID {
			continue
		}
		if (r.order.DeletedAt != nil) != deleted {
			continue
		}
		out = append(out, cloneOrder(r.order))
	}
	return out
}

func (s *state) sortedOrders() []*orderRecord {
	records := make([]*orderRecord, 0, len(s.orders))
	for _, r := range s.orders {
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b *orderRecord) int {
		if c := b.order.CreatedAt.Compare(a.order.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.order.ID, a.order.ID)
	})
	return records
}

func (s *state) accessibleOrder(caller backend.User, id int) (*orderRecord, error) {
	r, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.ownerID != caller.ID && caller.Role != backend.RoleAdmin {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *state) softDeleteOrder(caller backend.User, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.accessibleOrder(caller, id)
	if err != nil {
		return err
	}
	if r.order.DeletedAt == nil {
		t := s.now()
		r.order.DeletedAt = &t
	}
	return nil
}

func (s *state) restoreOrder(caller backend.User, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.accessibleOrder(caller, id)
	if err != nil {
		return err
	}
	r.order.DeletedAt = nil
	return nil
}

// purgeOrder removes the order and returns the storage keys of its files.
func (s *state) purgeOrder(caller backend.User, id int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.accessibleOrder(caller, id)
	if err != nil {
		return nil, err
	}
	delete(s.orders, id)
	return r.fileKeys, nil
}

// setOrderStatus moves order id to status and returns the owner's id.
func (s *state) setOrderStatus(id int, status string) (int, error) {
	if !slices.Contains(backend.OrderStatuses, status) {
		return 0, ErrUnknownStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.orders[id]
	if !ok {
		return 0, ErrNotFound
	}
	r.order.Status = status
	return r.ownerID, nil
}

func cloneOrder(o backend.Order) backend.Order {
	o.Files = slices.Clone(o.Files)
	if o.DeletedAt != nil {
		t := *o.DeletedAt
		o.DeletedAt = &t
	}
	return o
}

// Notifications

func (s *state) notify(senderID, recipientID int, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[recipientID]; !ok {
		return ErrNotFound
	}
	s.addNotification(senderID, recipientID, message)
	return nil
}

// notifyAdmins delivers message to every administrator and returns how many
// received it.
func (s *state) notifyAdmins(senderID int, message string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.adminIDs()
	for _, id := range ids {
		s.addNotification(senderID, id, message)
	}
	return len(ids)
}

func (s *state) addNotification(senderID, recipientID int, message string) {
	s.nextNotification++
	s.notifications[s.nextNotification] = &notificationRecord{
		id:          s.nextNotification,
		message:     message,
		senderID:    senderID,
		recipientID: recipientID,
		createdAt:   s.now(),
	}
}

func (s *state) received(userID int) []backend.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notificationList(userID, func(r *notificationRecord) bool {
		return r.recipientID == userID && r.deletedAt == nil
	})
}

// customerMessages lists the live notifications addressed to adminID by
// accounts that are not administrators.
func (s *state) customerMessages(adminID int) []backend.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notificationList(adminID, func(r *notificationRecord) bool {
		if r.recipientID != adminID || r.deletedAt != nil {
			return false
		}
		sender, ok := s.users[r.senderID]
		return ok && sender.user.Role != backend.RoleAdmin
	})
}

func (s *state) sent(userID int) []backend.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notificationList(userID, func(r *notificationRecord) bool {
		return r.senderID == userID && r.deletedAt == nil
	})
}

func (s *state) trashedNotifications(userID int) []backend.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notificationList(userID, func(r *notificationRecord) bool {
		return (r.recipientID == userID || r.senderID == userID) && r.deletedAt != nil
	})
}

func (s *state) notificationList(viewer int, keep func(*notificationRecord) bool) []backend.Notification {
	var records []*notificationRecord
	for _, r := range s.notifications {
		if keep(r) {
			records = append(records, r)
		}
	}
	slices.SortFunc(records, func(a, b *notificationRecord) int {
		if c := b.createdAt.Compare(a.createdAt); c != 0 {
			return c
		}
		return cmp.Compare(b.id, a.id)
	})

	out := make([]backend.Notification, 0, len(records))
	for _, r := range records {
		out = append(out, s.notificationView(r, viewer))
	}
	return out
}

func (s *state) notificationView(r *notificationRecord, viewer int) backend.Notification {
	n := backend.Notification{
		ID:         r.id,
		Message:    r.message,
		IsRead:     r.read,
		CreatedAt:  r.createdAt,
		IsSentByMe: r.senderID == viewer,
	}
	if r.deletedAt != nil {
		t := *r.deletedAt
		n.DeletedAt = &t
	}
	if acc, ok := s.users[r.senderID]; ok {
		n.Sender = &backend.Sender{
			LastName:  acc.user.LastName,
			FirstName: acc.user.FirstName,
			Email:     acc.user.Email,
		}
	}
	return n
}

func (s *state) ownNotification(userID, id int) (*notificationRecord, error) {
	r, ok := s.notifications[id]
	if !ok || (r.recipientID != userID && r.senderID != userID) {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *state) softDeleteNotification(userID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.ownNotification(userID, id)
	if err != nil {
		return err
	}
	if r.deletedAt == nil {
		t := s.now()
		r.deletedAt = &t
	}
	return nil
}

func (s *state) restoreNotification(userID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.ownNotification(userID, id)
	if err != nil {
		return err
	}
	r.deletedAt = nil
	return nil
}

func (s *state) purgeNotification(userID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownNotification(userID, id); err != nil {
		return err
	}
	delete(s.notifications, id)
	return nil
}

func (s *state) unreadCount(userID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread(userID)
}

func (s *state) unread(userID int) int {
	n := 0
	for _, r := range s.notifications {
		if r.recipientID == userID && r.deletedAt == nil && !r.read {
			n++
		}
	}
	return n
}

func (s *state) markRead(userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.notifications {
		if r.recipientID == userID && !r.read {
			r.read = true
			n++
		}
	}
	return n
}

// Statistics

func (s *state) liveOrders(userID int) []*orderRecord {
	var out []*orderRecord
	for _, r := range s.sortedOrders() {
		if r.order.DeletedAt == nil && (userID == 0 || r.ownerID == userID) {
			out = append(out, r)
		}
	}
	return out
}

func (s *state) adminDashboard() backend.AdminDashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := s.liveOrders(0)
	dash := backend.AdminDashboard{
		Totals: backend.Totals{
			Users:    len(s.users),
			Orders:   len(orders),
			Products: len(s.products),
			Files:    countFiles(orders),
			Revenue:  revenue(orders),
		},
		ByMonth:      byMonth(orders),
		ByStatus:     byStatus(orders),
		RecentOrders: []backend.RecentOrder{},
		RecentUsers:  []backend.RecentUser{},
	}

	for _, r := range orders[:min(len(orders), recentLimit)] {
		row := backend.RecentOrder{
			ID:        r.order.ID,
			Status:    r.order.Status,
			Amount:    r.order.Amount,
			CreatedAt: r.order.CreatedAt,
		}
		if acc, ok := s.users[r.ownerID]; ok {
			row.LastName, row.FirstName = acc.user.LastName, acc.user.FirstName
		}
		dash.RecentOrders = append(dash.RecentOrders, row)
	}

	users := s.userList()
	for _, u := range users[:min(len(users), recentLimit)] {
		dash.RecentUsers = append(dash.RecentUsers, backend.RecentUser{
			LastName:  u.LastName,
			FirstName: u.FirstName,
			Email:     u.Email,
			JoinedAt:  u.JoinedAt,
		})
	}
	return dash
}

func (s *state) userDashboard(u backend.User) backend.UserDashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := s.liveOrders(u.ID)
	dash := backend.UserDashboard{
		Email:               u.Email,
		TotalOrders:         len(orders),
		TotalAmount:         revenue(orders),
		TotalFiles:          countFiles(orders),
		UnreadNotifications: s.unread(u.ID),
		ByMonth:             byMonth(orders),
		RecentOrders:        []backend.Order{},
	}

	for _, r := range orders[:min(len(orders), recentLimit)] {
		dash.RecentOrders = append(dash.RecentOrders, cloneOrder(r.order))
	}

	inbox := s.notificationList(u.ID, func(r *notificationRecord) bool {
		return r.recipientID == u.ID && r.deletedAt == nil
	})
	dash.RecentNotifications = inbox[:min(len(inbox), recentLimit)]
	return dash
}

func countFiles(orders []*orderRecord) int {
	n := 0
	for _, r := range orders {
		n += len(r.order.Files)
	}
	return n
}

func revenue(orders []*orderRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range orders {
		total = total.Add(r.order.Amount)
	}
	return total
}

func byMonth(orders []*orderRecord) []backend.MonthlyCount {
	counts := map[string]int{}
	for _, r := range orders {
		counts[r.order.CreatedAt.Format("2006-01")]++
	}

	out := make([]backend.MonthlyCount, 0, len(counts))
	for month, n := range counts {
		out = append(out, backend.MonthlyCount{Month: month, Count: n})
	}
	slices.SortFunc(out, func(a, b backend.MonthlyCount) int { return cmp.Compare(a.Month, b.Month) })
	return out
}

func byStatus(orders []*orderRecord) []backend.StatusCount {
	counts := map[string]int{}
	for _, r := range orders {
		counts[r.order.Status]++
	}

	out := []backend.StatusCount{}
	for _, status := range backend.OrderStatuses {
		if n := counts[status]; n > 0 {
			out = append(out, backend.StatusCount{Status: status, Count: n})
		}
	}
	return out
}

func (s *state) activeOrders() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.orders {
		if r.order.DeletedAt == nil {
			n++
		}
	}
	return n
}
