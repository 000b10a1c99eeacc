package dto

import (
	"github.com/taskdeck/taskdeck/internal/models"
)

// BoardDTO groups a project's tasks into status buckets. Display only;
// nothing is stored in this shape.
type BoardDTO struct {
	Todo       []TaskDTO `json:"todo"`
	InProgress []TaskDTO `json:"in_progress"`
	Done       []TaskDTO `json:"done"`
}

// ToBoardDTO buckets tasks by status, preserving their order.
func ToBoardDTO(tasks []models.Task) BoardDTO {
	board := BoardDTO{
		Todo:       []TaskDTO{},
		InProgress: []TaskDTO{},
		Done:       []TaskDTO{},
	}

	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusTodo:
			board.Todo = append(board.Todo, ToTaskDTO(task))
		case models.TaskStatusInProgress:
			board.InProgress = append(board.InProgress, ToTaskDTO(task))
		case models.TaskStatusDone:
			board.Done = append(board.Done, ToTaskDTO(task))
		}
	}

	return board
}
