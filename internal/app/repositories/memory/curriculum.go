package memory

import (
	"context"
	"sort"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
)

type curriculumRepository struct {
	db *DB
}

func (r *curriculumRepository) sequence(subjectID int64) []models.SequencedSubTopic {
	var seq []models.SequencedSubTopic
	for _, st := range r.db.t.subTopics {
		t := r.db.t.topics[st.TopicID]
		m := r.db.t.modules[t.ModuleID]
		if m.SubjectID != subjectID {
			continue
		}
		seq = append(seq, models.SequencedSubTopic{
			CPRSubTopic: st,
			SubjectID:   m.SubjectID,
			ModuleOrder: m.Order,
			TopicOrder:  t.Order,
		})
	}
	sort.Slice(seq, func(i, j int) bool {
		a, b := seq[i], seq[j]
		if a.ModuleOrder != b.ModuleOrder {
			return a.ModuleOrder < b.ModuleOrder
		}
		if a.TopicOrder != b.TopicOrder {
			return a.TopicOrder < b.TopicOrder
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})
	return seq
}

func (r *curriculumRepository) ListSequenced(_ context.Context, subjectID int64) ([]models.SequencedSubTopic, error) {
	if err := r.db.failure(OpListSequenced); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.sequence(subjectID), nil
}

func (r *curriculumRepository) UpdatePlannedDates(_ context.Context, dates []models.PlannedDates) error {
	if err := r.db.failure(OpUpdatePlannedDates); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, d := range dates {
		st, ok := r.db.t.subTopics[d.SubTopicID]
		if !ok {
			continue
		}
		st.PlannedStartDate, st.PlannedEndDate = d.Start, d.End
		r.db.t.subTopics[d.SubTopicID] = st
	}
	return nil
}

func (r *curriculumRepository) GetSubTopic(_ context.Context, id int64) (*models.CPRSubTopic, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	st, ok := r.db.t.subTopics[id]
	if !ok {
		return nil, apperrors.ErrSubTopicNotFound
	}
	return &st, nil
}

func (r *curriculumRepository) GetSubTopicSubjectID(_ context.Context, id int64) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	st, ok := r.db.t.subTopics[id]
	if !ok {
		return 0, apperrors.ErrSubTopicNotFound
	}
	return r.db.t.modules[r.db.t.topics[st.TopicID].ModuleID].SubjectID, nil
}

func (r *curriculumRepository) UpdateSubTopicProgress(_ context.Context, subTopic *models.CPRSubTopic) error {
	if err := r.db.failure(OpUpdateProgress); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	st, ok := r.db.t.subTopics[subTopic.ID]
	if !ok {
		return apperrors.ErrSubTopicNotFound
	}
	st.Status = subTopic.Status
	st.ActualStartDate = subTopic.ActualStartDate
	st.ActualEndDate = subTopic.ActualEndDate
	r.db.t.subTopics[st.ID] = st
	return nil
}

func (r *curriculumRepository) ReplaceCurriculum(_ context.Context, subjectID int64, modules []*models.CPRModule) error {
	if err := r.db.failure(OpReplaceCurriculum); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	// ON DELETE CASCADE down the hierarchy, ON DELETE SET NULL on classes.
	removed := make(map[int64]bool)
	for id, m := range r.db.t.modules {
		if m.SubjectID != subjectID {
			continue
		}
		delete(r.db.t.modules, id)
		for tid, t := range r.db.t.topics {
			if t.ModuleID != id {
				continue
			}
			delete(r.db.t.topics, tid)
			for sid, st := range r.db.t.subTopics {
				if st.TopicID == tid {
					delete(r.db.t.subTopics, sid)
					removed[sid] = true
				}
			}
		}
	}
	for id, c := range r.db.t.classes {
		if c.SubTopicID != nil && removed[*c.SubTopicID] {
			c.SubTopicID = nil
			r.db.t.classes[id] = c
		}
	}

	for _, m := range modules {
		m.ID, m.SubjectID = r.db.id(), subjectID
		r.db.t.modules[m.ID] = models.CPRModule{ID: m.ID, SubjectID: subjectID, Name: m.Name, Order: m.Order}
		for _, t := range m.Topics {
			t.ID, t.ModuleID = r.db.id(), m.ID
			r.db.t.topics[t.ID] = models.CPRTopic{ID: t.ID, ModuleID: m.ID, Name: t.Name, Order: t.Order}
			for _, st := range t.SubTopics {
				st.ID, st.TopicID = r.db.id(), t.ID
				if st.Status == "" {
					st.Status = models.SubTopicPending
				}
				r.db.t.subTopics[st.ID] = *st
			}
		}
	}
	return nil
}

func (r *curriculumRepository) GetTree(_ context.Context, subjectID int64) ([]*models.CPRModule, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var modules []*models.CPRModule
	moduleByID := make(map[int64]*models.CPRModule)
	topicByID := make(map[int64]*models.CPRTopic)
	for _, s := range r.sequence(subjectID) {
		t := r.db.t.topics[s.TopicID]
		m, ok := moduleByID[t.ModuleID]
		if !ok {
			mv := r.db.t.modules[t.ModuleID]
			m = &mv
			moduleByID[m.ID] = m
			modules = append(modules, m)
		}
		tp, ok := topicByID[t.ID]
		if !ok {
			tp = &t
			topicByID[t.ID] = tp
			m.Topics = append(m.Topics, tp)
		}
		st := s.CPRSubTopic
		tp.SubTopics = append(tp.SubTopics, &st)
	}
	return modules, nil
}
