package handlers

import "github.com/gin-gonic/gin"

// AuthHandlerInterface defines the methods needed by the auth routes.
type AuthHandlerInterface interface {
	Signup(c *gin.Context)
	Login(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
}

// ResidentHandlerInterface defines the methods needed by the resident routes.
type ResidentHandlerInterface interface {
	GetResidents(c *gin.Context)
	GetResidentByID(c *gin.Context)
	GetOwnProfile(c *gin.Context)
	UpdateResident(c *gin.Context)
	VerifyResident(c *gin.Context)
	UploadProof(c *gin.Context)
}

// SkillHandlerInterface defines the methods needed by the skill routes.
type SkillHandlerInterface interface {
	GetSkills(c *gin.Context)
	CreateSkill(c *gin.Context)
	DeleteSkill(c *gin.Context)
	GetResidentSkills(c *gin.Context)
	AddResidentSkill(c *gin.Context)
	RemoveResidentSkill(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	PostJob(c *gin.Context)
	GetJobs(c *gin.Context)
	GetJobByID(c *gin.Context)
	UpdateJobStatus(c *gin.Context)
}

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	Apply(c *gin.Context)
	GetOwnApplications(c *gin.Context)
	GetApplicationsByJob(c *gin.Context)
	DecideApplication(c *gin.Context)
}

// TrainingHandlerInterface defines the methods needed by the training routes.
type TrainingHandlerInterface interface {
	PostTraining(c *gin.Context)
	GetTrainings(c *gin.Context)
	GetTrainingByID(c *gin.Context)
	RegisterForTraining(c *gin.Context)
	UpdateAttendance(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var _ AuthHandlerInterface = (*AuthHandler)(nil)
var _ ResidentHandlerInterface = (*ResidentHandler)(nil)
var _ SkillHandlerInterface = (*SkillHandler)(nil)
var _ JobHandlerInterface = (*JobHandler)(nil)
var _ ApplicationHandlerInterface = (*ApplicationHandler)(nil)
var _ TrainingHandlerInterface = (*TrainingHandler)(nil)
