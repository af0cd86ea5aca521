package repositories_test

import (
	"context"
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"personrefresh/src/domain"
	"personrefresh/src/domain/entities"
	"personrefresh/src/repositories"
	"personrefresh/src/services/refresh"
	"personrefresh/src/test_artefacts/comparer"
	"personrefresh/src/test_artefacts/fakes"
	"personrefresh/src/test_artefacts/stubs"
	"personrefresh/src/test_artefacts/test_seeder"
)

var _ = Describe("PersonRepository", func() {
	var (
		ctx        context.Context
		repository *repositories.PersonRepository
		testSeeder test_seeder.TestSeeder
	)

	BeforeEach(func() {
		ctx = context.Background()
		client := requireDatabase()

		repository = repositories.NewPersonRepository(client.GetReadPool(), client.GetWritePool())
		testSeeder = test_seeder.New(client.GetWritePool())
		testSeeder.ResetPeople(ctx)
	})

	It("should run against a fully migrated schema", func() {
		version, dirty := testSeeder.SchemaVersion(ctx)

		Expect(version).To(Equal(int64(1)))
		Expect(dirty).To(BeFalse())
	})

	It("should hand out ids from 1 after a reset", func() {
		person := stubs.NewPersonStub().Get()

		testSeeder.InsertPerson(ctx, &person)

		Expect(person.ID).To(Equal(int64(1)))
		Expect(testSeeder.CountPeople(ctx)).To(Equal(1))
	})

	Describe("FindRefreshCandidates", func() {
		It("should apply the staleness predicate and order by id", func() {
			// ARRANGE
			now := time.Now().UTC()
			cutoff := now.Add(-72 * time.Hour)

			neverFetched := stubs.NewPersonStub().Get()
			stale := stubs.NewPersonStub().WithLastFetched(now.Add(-80 * time.Hour)).Get()
			fresh := stubs.NewPersonStub().WithLastFetched(now.Add(-time.Hour)).Get()
			emptyURL := stubs.NewPersonStub().WithLinkedinURL("").Get()

			for _, person := range []*entities.Person{&neverFetched, &stale, &fresh, &emptyURL} {
				testSeeder.InsertPerson(ctx, person)
			}

			// ACT
			candidates, err := repository.FindRefreshCandidates(ctx, cutoff)

			// ASSERT
			Expect(err).ToNot(HaveOccurred())
			Expect(candidates).To(HaveLen(2))
			Expect(candidates[0].ID).To(Equal(neverFetched.ID))
			Expect(candidates[1].ID).To(Equal(stale.ID))
			Expect(candidates[0]).To(BeComparableTo(neverFetched, comparer.PersonOptions(time.Second)))
		})

		It("should return an empty list when nothing is stale", func() {
			fresh := stubs.NewPersonStub().WithLastFetched(time.Now()).Get()
			testSeeder.InsertPerson(ctx, &fresh)

			candidates, err := repository.FindRefreshCandidates(ctx, time.Now().Add(-time.Hour))

			Expect(err).ToNot(HaveOccurred())
			Expect(candidates).ToNot(BeNil())
			Expect(candidates).To(BeEmpty())
		})
	})

	Describe("Save", func() {
		It("should persist the refreshed fields and provenance", func() {
			// ARRANGE
			person := stubs.NewPersonStub().WithDescription("old").Get()
			testSeeder.InsertPerson(ctx, &person)

			fetchedAt := time.Now().UTC()
			person.Description = "Hello World"
			person.Skills = []string{"Go", "SQL"}
			person.JobTitle = "Engineer"
			person.Metadata.LinkedinProfile = json.RawMessage(`{"description": "Hello World"}`)
			person.Metadata.LinkedinLastFetched = &fetchedAt

			// ACT
			saved, err := repository.Save(ctx, person)

			// ASSERT
			Expect(err).ToNot(HaveOccurred())
			stored, err := testSeeder.SelectPersonByID(ctx, person.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored).To(BeComparableTo(saved, comparer.PersonOptions(time.Millisecond)))
			Expect(stored).To(BeComparableTo(person, comparer.StoredPersonOptions(time.Millisecond)))
			Expect(stored.Description).To(Equal("Hello World"))
			Expect(stored.Skills).To(Equal([]string{"Go", "SQL"}))
			Expect(stored.Metadata.LinkedinProfile).To(BeComparableTo(person.Metadata.LinkedinProfile, comparer.JSONRawMessage()))
			Expect(*stored.Metadata.LinkedinLastFetched).To(BeTemporally("~", fetchedAt, time.Millisecond))
		})

		It("should fail for an unknown id", func() {
			person := stubs.NewPersonStub().WithID(424242).Get()

			_, err := repository.Save(ctx, person)

			Expect(err).To(MatchError(domain.ErrPersonNotFound))
		})
	})

	Describe("refresh end to end", func() {
		It("should refresh every eligible person in the database", func() {
			// ARRANGE
			people := []entities.Person{
				stubs.NewPersonStub().Get(),
				stubs.NewPersonStub().Get(),
				stubs.NewPersonStub().Get(),
			}
			for i := range people {
				testSeeder.InsertPerson(ctx, &people[i])
			}

			config := refresh.DefaultConfig()
			config.FetchDelay = 0
			fetcher := fakes.NewProfileFetcher(json.RawMessage(`{"description": "Hello World", "skills": ["Go"]}`))
			service := refresh.NewRefreshService(discardLogger(), config, repository, fetcher)

			// ACT
			outcomes, err := service.RefreshAll(ctx)

			// ASSERT
			Expect(err).ToNot(HaveOccurred())
			Expect(outcomes).To(HaveLen(3))
			for i, outcome := range outcomes {
				Expect(outcome.Succeeded()).To(BeTrue())

				stored, err := testSeeder.SelectPersonByID(ctx, people[i].ID)
				Expect(err).ToNot(HaveOccurred())
				Expect(stored.Description).To(Equal("Hello World"))
				Expect(stored.Skills).To(Equal([]string{"Go"}))
				Expect(*stored.Metadata.LinkedinLastFetched).To(BeTemporally("~", time.Now(), 5*time.Second))
			}

			again, err := service.RefreshAll(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(again).To(BeEmpty())
		})
	})
})
