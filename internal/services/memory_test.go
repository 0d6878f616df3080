package services

import (
	"context"
	"sort"
	"time"

	"github.com/VishwaPriyan-S/ChitFunds/internal/errs"
	"github.com/VishwaPriyan-S/ChitFunds/internal/models"
	"github.com/VishwaPriyan-S/ChitFunds/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for the database shared by the fake
// repositories. The fake unit of work snapshots and restores it to mimic
// transaction rollback.
type memStore struct {
	users        map[primitive.ObjectID]models.User
	groups       map[primitive.ObjectID]models.ChitGroup
	memberships  map[primitive.ObjectID]models.Membership
	auctions     map[primitive.ObjectID]models.Auction
	bids         map[primitive.ObjectID]models.Bid
	transactions map[primitive.ObjectID]models.Transaction

	// failTransactionCreate makes the next transaction insert fail, to
	// exercise rollback paths.
	failTransactionCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[primitive.ObjectID]models.User{},
		groups:       map[primitive.ObjectID]models.ChitGroup{},
		memberships:  map[primitive.ObjectID]models.Membership{},
		auctions:     map[primitive.ObjectID]models.Auction{},
		bids:         map[primitive.ObjectID]models.Bid{},
		transactions: map[primitive.ObjectID]models.Transaction{},
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.users {
		cp.users[k] = v
	}
	for k, v := range s.groups {
		cp.groups[k] = v
	}
	for k, v := range s.memberships {
		cp.memberships[k] = v
	}
	for k, v := range s.auctions {
		cp.auctions[k] = v
	}
	for k, v := range s.bids {
		cp.bids[k] = v
	}
	for k, v := range s.transactions {
		cp.transactions[k] = v
	}
	cp.failTransactionCreate = s.failTransactionCreate
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.users = snap.users
	s.groups = snap.groups
	s.memberships = snap.memberships
	s.auctions = snap.auctions
	s.bids = snap.bids
	s.transactions = snap.transactions
}

// memUnitOfWork mimics transactional rollback by snapshotting the store.
// beforeTxn, when set, runs once before the next transaction starts; tests
// use it to interleave a competing write between a caller's validation reads
// and its transactional writes.
type memUnitOfWork struct {
	store     *memStore
	beforeTxn func()
}

func (u *memUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if hook := u.beforeTxn; hook != nil {
		u.beforeTxn = nil
		hook()
	}
	snap := u.store.snapshot()
	if err := fn(ctx); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

// --- users ---

type memUserRepo struct{ store *memStore }

var _ repositories.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return errs.Conflict("duplicate email")
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.store.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, errs.NotFound("user not found")
	}
	return &u, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, errs.NotFound("user not found")
}

func (r *memUserRepo) FindByIdentity(ctx context.Context, idType, idNumber string) (*models.User, error) {
	for _, u := range r.store.users {
		if u.IDType == idType && u.IDNumber == idNumber {
			u := u
			return &u, nil
		}
	}
	return nil, errs.NotFound("user not found")
}

func (r *memUserRepo) FindMembers(ctx context.Context, status models.UserStatus, page, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.store.users {
		if u.Role != models.RoleMember {
			continue
		}
		if status != "" && u.Status != status {
			continue
		}
		u := u
		out = append(out, &u)
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) FindRecentMembers(ctx context.Context, limit int) ([]*models.User, error) {
	members, _, _ := r.FindMembers(ctx, "", 1, limit)
	if len(members) > limit {
		members = members[:limit]
	}
	return members, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return errs.NotFound("user not found")
	}
	user.UpdatedAt = time.Now()
	r.store.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.UserStatus) error {
	u, ok := r.store.users[id]
	if !ok {
		return errs.NotFound("user not found")
	}
	u.Status = status
	r.store.users[id] = u
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.store.users[id]; !ok {
		return errs.NotFound("user not found")
	}
	delete(r.store.users, id)
	return nil
}

func (r *memUserRepo) CountMembers(ctx context.Context, status models.UserStatus) (int64, error) {
	_, n, _ := r.FindMembers(ctx, status, 1, 0)
	return n, nil
}

// --- groups ---

type memGroupRepo struct{ store *memStore }

var _ repositories.GroupRepository = (*memGroupRepo)(nil)

func (r *memGroupRepo) Create(ctx context.Context, group *models.ChitGroup) error {
	if group.ID.IsZero() {
		group.ID = primitive.NewObjectID()
	}
	group.CreatedAt = time.Now()
	group.UpdatedAt = group.CreatedAt
	r.store.groups[group.ID] = *group
	return nil
}

func (r *memGroupRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ChitGroup, error) {
	g, ok := r.store.groups[id]
	if !ok {
		return nil, errs.NotFound("group not found")
	}
	return &g, nil
}

func (r *memGroupRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.ChitGroup, error) {
	var out []*models.ChitGroup
	for _, id := range ids {
		if g, ok := r.store.groups[id]; ok {
			g := g
			out = append(out, &g)
		}
	}
	return out, nil
}

func (r *memGroupRepo) FindAllWithMemberCounts(ctx context.Context) ([]*models.GroupSummary, error) {
	var out []*models.GroupSummary
	for _, g := range r.store.groups {
		var count int64
		for _, m := range r.store.memberships {
			if m.ChitGroupID == g.ID && m.Status == models.MembershipStatusActive {
				count++
			}
		}
		out = append(out, &models.GroupSummary{ChitGroup: g, CurrentMembers: count})
	}
	return out, nil
}

func (r *memGroupRepo) Update(ctx context.Context, group *models.ChitGroup) error {
	if _, ok := r.store.groups[group.ID]; !ok {
		return errs.NotFound("group not found")
	}
	group.UpdatedAt = time.Now()
	r.store.groups[group.ID] = *group
	return nil
}

func (r *memGroupRepo) CountByStatus(ctx context.Context, status models.GroupStatus) (int64, error) {
	var n int64
	for _, g := range r.store.groups {
		if g.Status == status {
			n++
		}
	}
	return n, nil
}

// --- memberships ---

type memMembershipRepo struct{ store *memStore }

var _ repositories.MembershipRepository = (*memMembershipRepo)(nil)

func (r *memMembershipRepo) Create(ctx context.Context, membership *models.Membership) error {
	for _, m := range r.store.memberships {
		if m.ChitGroupID == membership.ChitGroupID && m.UserID == membership.UserID {
			return errs.Conflict("duplicate membership")
		}
	}
	if membership.ID.IsZero() {
		membership.ID = primitive.NewObjectID()
	}
	membership.CreatedAt = time.Now()
	membership.UpdatedAt = membership.CreatedAt
	r.store.memberships[membership.ID] = *membership
	return nil
}

func (r *memMembershipRepo) FindByGroupAndUser(ctx context.Context, groupID, userID primitive.ObjectID) (*models.Membership, error) {
	for _, m := range r.store.memberships {
		if m.ChitGroupID == groupID && m.UserID == userID {
			m := m
			return &m, nil
		}
	}
	return nil, errs.NotFound("membership not found")
}

func (r *memMembershipRepo) FindActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Membership, error) {
	var out []*models.Membership
	for _, m := range r.store.memberships {
		if m.UserID == userID && m.Status == models.MembershipStatusActive {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *memMembershipRepo) FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]*models.Membership, error) {
	var out []*models.Membership
	for _, m := range r.store.memberships {
		if m.ChitGroupID == groupID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *memMembershipRepo) CountActiveByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	var n int64
	for _, m := range r.store.memberships {
		if m.ChitGroupID == groupID && m.Status == models.MembershipStatusActive {
			n++
		}
	}
	return n, nil
}

func (r *memMembershipRepo) CountActiveByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var n int64
	for _, m := range r.store.memberships {
		if m.UserID == userID && m.Status == models.MembershipStatusActive {
			n++
		}
	}
	return n, nil
}

func (r *memMembershipRepo) MarkReceived(ctx context.Context, id primitive.ObjectID, amount float64, month, year int) error {
	m, ok := r.store.memberships[id]
	if !ok || m.HasReceived {
		return errs.NotEligible("member has already received a payout in this group")
	}
	m.HasReceived = true
	m.ReceivedAmount = amount
	m.ReceivedMonth = month
	m.ReceivedYear = year
	m.UpdatedAt = time.Now()
	r.store.memberships[id] = m
	return nil
}

func (r *memMembershipRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.MembershipStatus) error {
	m, ok := r.store.memberships[id]
	if !ok {
		return errs.NotFound("membership not found")
	}
	m.Status = status
	r.store.memberships[id] = m
	return nil
}

// --- auctions ---

type memAuctionRepo struct{ store *memStore }

var _ repositories.AuctionRepository = (*memAuctionRepo)(nil)

func (r *memAuctionRepo) Create(ctx context.Context, auction *models.Auction) error {
	for _, a := range r.store.auctions {
		if a.ChitGroupID == auction.ChitGroupID && a.Month == auction.Month && a.Year == auction.Year {
			return errs.Conflict("duplicate auction")
		}
	}
	if auction.ID.IsZero() {
		auction.ID = primitive.NewObjectID()
	}
	auction.CreatedAt = time.Now()
	auction.UpdatedAt = auction.CreatedAt
	r.store.auctions[auction.ID] = *auction
	return nil
}

func (r *memAuctionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Auction, error) {
	a, ok := r.store.auctions[id]
	if !ok {
		return nil, errs.NotFound("auction not found")
	}
	return &a, nil
}

func (r *memAuctionRepo) FindByGroupAndCycle(ctx context.Context, groupID primitive.ObjectID, month, year int) (*models.Auction, error) {
	for _, a := range r.store.auctions {
		if a.ChitGroupID == groupID && a.Month == month && a.Year == year {
			a := a
			return &a, nil
		}
	}
	return nil, errs.NotFound("auction not found")
}

func (r *memAuctionRepo) FindAll(ctx context.Context) ([]*models.Auction, error) {
	var out []*models.Auction
	for _, a := range r.store.auctions {
		a := a
		out = append(out, &a)
	}
	return out, nil
}

func (r *memAuctionRepo) FindActiveByGroups(ctx context.Context, groupIDs []primitive.ObjectID) ([]*models.Auction, error) {
	var out []*models.Auction
	for _, a := range r.store.auctions {
		if a.Status != models.AuctionStatusActive {
			continue
		}
		for _, id := range groupIDs {
			if a.ChitGroupID == id {
				a := a
				out = append(out, &a)
				break
			}
		}
	}
	return out, nil
}

func (r *memAuctionRepo) CompleteIfActive(ctx context.Context, id, winnerID primitive.ObjectID, winningAmount float64, closedAt time.Time) (bool, error) {
	a, ok := r.store.auctions[id]
	if !ok || a.Status != models.AuctionStatusActive {
		return false, nil
	}
	a.Status = models.AuctionStatusCompleted
	a.WinnerID = winnerID
	a.WinningBidAmount = winningAmount
	a.ClosedAt = closedAt
	a.UpdatedAt = time.Now()
	r.store.auctions[id] = a
	return true, nil
}

func (r *memAuctionRepo) CancelIfOpen(ctx context.Context, id primitive.ObjectID) (bool, error) {
	a, ok := r.store.auctions[id]
	if !ok || (a.Status != models.AuctionStatusScheduled && a.Status != models.AuctionStatusActive) {
		return false, nil
	}
	a.Status = models.AuctionStatusCancelled
	a.UpdatedAt = time.Now()
	r.store.auctions[id] = a
	return true, nil
}

// --- bids ---

type memBidRepo struct{ store *memStore }

var _ repositories.BidRepository = (*memBidRepo)(nil)

func (r *memBidRepo) Upsert(ctx context.Context, auctionID, userID primitive.ObjectID, amount float64, bidTime time.Time) error {
	for id, b := range r.store.bids {
		if b.AuctionID == auctionID && b.UserID == userID {
			b.BidAmount = amount
			b.BidTime = bidTime
			r.store.bids[id] = b
			return nil
		}
	}
	id := primitive.NewObjectID()
	r.store.bids[id] = models.Bid{
		ID:        id,
		AuctionID: auctionID,
		UserID:    userID,
		BidAmount: amount,
		BidTime:   bidTime,
	}
	return nil
}

func (r *memBidRepo) FindByAuction(ctx context.Context, auctionID primitive.ObjectID) ([]*models.Bid, error) {
	var out []*models.Bid
	for _, b := range r.store.bids {
		if b.AuctionID == auctionID {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BidAmount != out[j].BidAmount {
			return out[i].BidAmount < out[j].BidAmount
		}
		return out[i].BidTime.Before(out[j].BidTime)
	})
	return out, nil
}

func (r *memBidRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Bid, error) {
	var out []*models.Bid
	for _, b := range r.store.bids {
		if b.UserID == userID {
			b := b
			out = append(out, &b)
		}
	}
	return out, nil
}

// --- transactions ---

type memTransactionRepo struct{ store *memStore }

var _ repositories.TransactionRepository = (*memTransactionRepo)(nil)

func (r *memTransactionRepo) Create(ctx context.Context, txn *models.Transaction) error {
	if r.store.failTransactionCreate {
		r.store.failTransactionCreate = false
		return errs.StoreFailure(context.DeadlineExceeded)
	}
	if txn.ID.IsZero() {
		txn.ID = primitive.NewObjectID()
	}
	txn.CreatedAt = time.Now()
	txn.UpdatedAt = txn.CreatedAt
	r.store.transactions[txn.ID] = *txn
	return nil
}

func (r *memTransactionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	t, ok := r.store.transactions[id]
	if !ok {
		return nil, errs.NotFound("transaction not found")
	}
	return &t, nil
}

func (r *memTransactionRepo) FindByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Transaction, int64, error) {
	var out []*models.Transaction
	for _, t := range r.store.transactions {
		if t.UserID == userID {
			t := t
			out = append(out, &t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memTransactionRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Transaction, int64, error) {
	var out []*models.Transaction
	for _, t := range r.store.transactions {
		t := t
		out = append(out, &t)
	}
	return out, int64(len(out)), nil
}

func (r *memTransactionRepo) SumAmounts(ctx context.Context, userID primitive.ObjectID, txType models.TransactionType, status models.TransactionStatus) (float64, error) {
	var sum float64
	for _, t := range r.store.transactions {
		if t.UserID != userID {
			continue
		}
		if txType != "" && t.Type != txType {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		sum += t.Amount
	}
	return sum, nil
}

func (r *memTransactionRepo) SumCompleted(ctx context.Context) (float64, error) {
	var sum float64
	for _, t := range r.store.transactions {
		if t.Status == models.TransactionStatusCompleted {
			sum += t.Amount
		}
	}
	return sum, nil
}

func (r *memTransactionRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TransactionStatus) error {
	t, ok := r.store.transactions[id]
	if !ok {
		return errs.NotFound("transaction not found")
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	r.store.transactions[id] = t
	return nil
}

// fixture wires a full service stack over one shared store
type fixture struct {
	store *memStore
	uow   *memUnitOfWork

	users        *memUserRepo
	groups       *memGroupRepo
	memberships  *memMembershipRepo
	auctions     *memAuctionRepo
	bids         *memBidRepo
	transactions *memTransactionRepo

	auctionSvc *AuctionServiceImpl
	groupSvc   *GroupServiceImpl
	userSvc    *UserServiceImpl
	dashSvc    *DashboardServiceImpl
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:        store,
		users:        &memUserRepo{store: store},
		groups:       &memGroupRepo{store: store},
		memberships:  &memMembershipRepo{store: store},
		auctions:     &memAuctionRepo{store: store},
		bids:         &memBidRepo{store: store},
		transactions: &memTransactionRepo{store: store},
	}
	f.uow = &memUnitOfWork{store: store}
	f.auctionSvc = NewAuctionService(f.auctions, f.bids, f.groups, f.memberships, f.transactions, f.users, f.uow)
	f.groupSvc = NewGroupService(f.groups, f.memberships, f.users)
	f.userSvc = NewUserService(f.users, f.memberships)
	f.dashSvc = NewDashboardService(f.users, f.groups, f.memberships, f.transactions)
	return f
}

func (f *fixture) seedGroup(total float64, slots int) *models.ChitGroup {
	group := &models.ChitGroup{
		Name:         "Test Chit",
		TotalAmount:  total,
		TotalMembers: slots,
		Duration:     slots,
		Status:       models.GroupStatusActive,
	}
	_ = f.groups.Create(context.Background(), group)
	return group
}

func (f *fixture) seedMember(email string) *models.User {
	user := &models.User{
		FirstName: "Test",
		LastName:  "Member",
		Email:     email,
		Role:      models.RoleMember,
		Status:    models.UserStatusApproved,
	}
	_ = f.users.Create(context.Background(), user)
	return user
}

func (f *fixture) seedMembership(groupID, userID primitive.ObjectID) *models.Membership {
	m := &models.Membership{
		ChitGroupID: groupID,
		UserID:      userID,
		JoinedDate:  time.Now(),
		Status:      models.MembershipStatusActive,
	}
	_ = f.memberships.Create(context.Background(), m)
	return m
}

func (f *fixture) seedAuction(groupID primitive.ObjectID, month, year int) *models.Auction {
	a := &models.Auction{
		ChitGroupID: groupID,
		Month:       month,
		Year:        year,
		Status:      models.AuctionStatusActive,
		AuctionDate: time.Now(),
	}
	_ = f.auctions.Create(context.Background(), a)
	return a
}
