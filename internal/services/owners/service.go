package owners

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"meteradmin/internal/domain"
	"meteradmin/internal/query"
	"meteradmin/internal/util/words"
)

// Service manages officer and user records in the users collection.
type Service struct {
	docs  domain.DocumentStore
	creds domain.CredentialStore
	log   *zap.Logger
	now   func() time.Time
}

// New returns an owner service backed by the given stores.
func New(docs domain.DocumentStore, creds domain.CredentialStore, log *zap.Logger) *Service {
	return &Service{docs: docs, creds: creds, log: log, now: time.Now}
}

// RegisterOfficer creates an officer account and document.
func (s *Service) RegisterOfficer(ctx context.Context, in domain.OfficerInput) (domain.Owner, error) {
	o := domain.Owner{
		Role:        domain.RoleOfficer,
		OfficerID:   strings.TrimSpace(in.OfficerID),
		Name:        words.Capitalize(strings.TrimSpace(in.Name)),
		Email:       words.NormalizeEmail(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
	}
	if err := required(
		"name", o.Name,
		"email", o.Email,
		"id", o.OfficerID,
		"phoneNumber", o.PhoneNumber,
	); err != nil {
		return domain.Owner{}, err
	}
	return s.register(ctx, o)
}

// RegisterUser creates a user account and document holding the first meter.
func (s *Service) RegisterUser(ctx context.Context, in domain.UserInput) (domain.Owner, error) {
	first := domain.MeterRecord{
		ID:      strings.TrimSpace(in.WaterMeter1.ID),
		Address: words.Capitalize(strings.TrimSpace(in.WaterMeter1.Address)),
	}
	o := domain.Owner{
		Role:        domain.RoleUser,
		Name:        words.Capitalize(strings.TrimSpace(in.Name)),
		Email:       words.NormalizeEmail(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Street:      words.Capitalize(strings.TrimSpace(in.Street)),
		City:        words.Capitalize(strings.TrimSpace(in.City)),
		Province:    words.Capitalize(strings.TrimSpace(in.Province)),
		Country:     words.Capitalize(strings.TrimSpace(in.Country)),
		Meters:      domain.Meters{1: first},
	}
	if err := required(
		"name", o.Name,
		"email", o.Email,
		"phoneNumber", o.PhoneNumber,
		"street", o.Street,
		"city", o.City,
		"province", o.Province,
		"country", o.Country,
		"waterMeter1.id", first.ID,
		"waterMeter1.address", first.Address,
	); err != nil {
		return domain.Owner{}, err
	}
	return s.register(ctx, o)
}

func (s *Service) register(ctx context.Context, o domain.Owner) (domain.Owner, error) {
	if !words.IsEmail(o.Email) {
		return domain.Owner{}, domain.Invalid("email", "invalid email format")
	}
	if err := ctx.Err(); err != nil {
		return domain.Owner{}, err
	}

	o.ID = domain.OwnerID(ulid.Make().String())
	o.CreatedAt = s.now().UTC().Truncate(time.Second)
	if err := s.creds.CreateAccount(domain.Account{UID: o.ID, Email: o.Email, CreatedAt: o.CreatedAt}); err != nil {
		return domain.Owner{}, err
	}
	if err := s.docs.Create(ctx, domain.CollectionUsers, domain.Document{ID: o.ID, Fields: toFields(o)}); err != nil {
		if derr := s.creds.DeleteAccounts(o.ID); derr != nil {
			s.log.Error("orphaned account", zap.String("uid", o.ID.String()), zap.Error(derr))
		}
		return domain.Owner{}, err
	}
	s.log.Info("owner registered",
		zap.String("uid", o.ID.String()),
		zap.String("role", o.Role.String()),
	)
	return o, nil
}

// GetOwner returns the officer or user with id.
func (s *Service) GetOwner(ctx context.Context, id domain.OwnerID) (domain.Owner, error) {
	doc, err := s.docs.Get(ctx, domain.CollectionUsers, id)
	if err != nil {
		return domain.Owner{}, err
	}
	return fromDocument(doc), nil
}

// EditOfficer updates an officer's name, officer id and phone number.
func (s *Service) EditOfficer(ctx context.Context, id domain.OwnerID, edit domain.OfficerEdit) error {
	set := map[string]any{
		fieldName:        words.Capitalize(strings.TrimSpace(edit.Name)),
		fieldOfficerID:   strings.TrimSpace(edit.OfficerID),
		fieldPhoneNumber: strings.TrimSpace(edit.PhoneNumber),
	}
	if err := requiredFields(set, fieldName, fieldOfficerID, fieldPhoneNumber); err != nil {
		return err
	}
	return s.edit(ctx, id, domain.RoleOfficer, set)
}

// EditUser updates a user's profile fields. Meters are replaced through the
// meter gateway instead.
func (s *Service) EditUser(ctx context.Context, id domain.OwnerID, edit domain.UserEdit) error {
	set := map[string]any{
		fieldName:        words.Capitalize(strings.TrimSpace(edit.Name)),
		fieldPhoneNumber: strings.TrimSpace(edit.PhoneNumber),
		fieldStreet:      words.Capitalize(strings.TrimSpace(edit.Street)),
		fieldCity:        words.Capitalize(strings.TrimSpace(edit.City)),
		fieldProvince:    words.Capitalize(strings.TrimSpace(edit.Province)),
		fieldCountry:     words.Capitalize(strings.TrimSpace(edit.Country)),
	}
	if err := requiredFields(set, fieldName, fieldPhoneNumber, fieldStreet, fieldCity, fieldProvince, fieldCountry); err != nil {
		return err
	}
	return s.edit(ctx, id, domain.RoleUser, set)
}

func (s *Service) edit(ctx context.Context, id domain.OwnerID, role domain.Role, set map[string]any) error {
	current, err := s.GetOwner(ctx, id)
	if err != nil {
		return err
	}
	if current.Role != role {
		return domain.Invalid("role", "%s is a %s, not a %s", id, current.Role, role)
	}
	if err := s.docs.Update(ctx, domain.CollectionUsers, id, domain.Patch{Set: set}); err != nil {
		return err
	}
	s.log.Info("owner edited", zap.String("uid", id.String()), zap.String("role", role.String()))
	return nil
}

// SearchOwners returns every owner with role that matches q, sorted but not
// paged.
func (s *Service) SearchOwners(ctx context.Context, role domain.Role, q domain.ListQuery) ([]domain.Owner, error) {
	q, err := query.Normalize(q)
	if err != nil {
		return nil, err
	}
	all, err := s.byRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return query.Filter(all, q), nil
}

// ListOwners returns one page of owners with role that match q.
func (s *Service) ListOwners(ctx context.Context, role domain.Role, q domain.ListQuery) (domain.ListResult, error) {
	q, err := query.Normalize(q)
	if err != nil {
		return domain.ListResult{}, err
	}
	all, err := s.byRole(ctx, role)
	if err != nil {
		return domain.ListResult{}, err
	}
	return query.Page(query.Filter(all, q), q), nil
}

func (s *Service) byRole(ctx context.Context, role domain.Role) ([]domain.Owner, error) {
	if role != domain.RoleOfficer && role != domain.RoleUser {
		return nil, domain.Invalid("role", "unknown role %q", role)
	}
	docs, err := s.docs.Query(ctx, domain.CollectionUsers, domain.Filter{Field: fieldRole, Equals: role.String()})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Owner, len(docs))
	for i, d := range docs {
		out[i] = fromDocument(d)
	}
	return out, nil
}

// DeleteOwners removes the listed owners of role and their accounts. Ids that
// do not exist or belong to another role are skipped. It returns how many
// owners were removed.
func (s *Service) DeleteOwners(ctx context.Context, role domain.Role, ids []domain.OwnerID) (int, error) {
	if len(ids) == 0 {
		return 0, domain.Invalid("ids", "no %ss selected", role)
	}
	all, err := s.byRole(ctx, role)
	if err != nil {
		return 0, err
	}
	known := make(map[domain.OwnerID]bool, len(all))
	for _, o := range all {
		known[o.ID] = true
	}
	var targets []domain.OwnerID
	for _, id := range ids {
		if known[id] {
			targets = append(targets, id)
			known[id] = false
		}
	}
	if len(targets) == 0 {
		return 0, nil
	}

	n, err := s.docs.Delete(ctx, domain.CollectionUsers, targets...)
	if err != nil {
		return 0, err
	}
	if err := s.creds.DeleteAccounts(targets...); err != nil {
		return n, fmt.Errorf("delete accounts: %w", err)
	}
	s.log.Info("owners deleted", zap.String("role", role.String()), zap.Int("count", n))
	return n, nil
}

// required takes name/value pairs and reports the first blank value.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if words.Blank(pairs[i+1]) {
			return domain.Invalid(pairs[i], "is required")
		}
	}
	return nil
}

func requiredFields(set map[string]any, names ...string) error {
	for _, n := range names {
		if v, _ := set[n].(string); words.Blank(v) {
			return domain.Invalid(n, "is required")
		}
	}
	return nil
}

// Compile-time assertion that Service implements domain.OwnerService.
var _ domain.OwnerService = (*Service)(nil)
